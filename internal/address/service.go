package address

import (
	"strings"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(userID int) ([]Address, error) {
	return s.repo.List(userID)
}

func (s *Service) Get(userID, addressID int) (Address, error) {
	return s.repo.Get(userID, addressID)
}

func (s *Service) Add(userID int, name, phone, description string) (Address, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	description = strings.TrimSpace(description)
	if name == "" || phone == "" || description == "" {
		return Address{}, ErrInvalidAddress
	}
	now := time.Now().Format(time.RFC3339)
	return s.repo.Add(Address{
		UserID:      userID,
		Name:        name,
		Phone:       phone,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *Service) Update(userID, addressID int, name, phone, description string) (Address, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	description = strings.TrimSpace(description)
	if name == "" || phone == "" || description == "" {
		return Address{}, ErrInvalidAddress
	}
	current, err := s.repo.Get(userID, addressID)
	if err != nil {
		return Address{}, err
	}
	current.Name = name
	current.Phone = phone
	current.Description = description
	current.UpdatedAt = time.Now().Format(time.RFC3339)
	return s.repo.Update(current)
}

func (s *Service) Delete(userID, addressID int) error {
	return s.repo.Delete(userID, addressID)
}
