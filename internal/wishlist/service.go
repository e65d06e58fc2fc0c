package wishlist

import (
	"time"

	"github.com/shopzeo/storefront-api/internal/product"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Add(userID, productID int) ([]int, error) {
	if userID <= 0 || productID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.Add(userID, productID, now())
}

func (s *Service) Remove(userID, productID int) ([]int, error) {
	if userID <= 0 || productID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.Remove(userID, productID, now())
}

func (s *Service) Get(userID int) ([]product.Summary, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.Get(userID)
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
