package user

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ServiceInterface is consumed by packages that need user lookups without
// depending on the concrete service (order, otp).
type ServiceInterface interface {
	GetByID(id int) (User, error)
	GetByPhone(phone string) (User, error)
	MarkVerified(id int) error
}

type Service struct {
	repo   Repository
	resets ResetRepository
}

func NewService(repo Repository, resets ResetRepository) *Service {
	return &Service{repo: repo, resets: resets}
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetByPhone(phone string) (User, error) {
	return s.repo.GetByPhone(phone)
}

func (s *Service) Register(u User) (User, error) {
	if _, err := s.repo.GetByEmail(u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u.Password = string(hashed)
	return s.repo.Create(u)
}

func (s *Service) Authenticate(email, password string) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) Update(id int, u User) (User, error) {
	u.UpdatedAt = nowRFC3339()
	return s.repo.Update(id, u)
}

// ChangePassword verifies the current password before storing the new hash.
func (s *Service) ChangePassword(id int, oldPassword, newPassword string) error {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(id, string(hashed), nowRFC3339())
}

// ForgotPassword issues a reset code for the account. The code is returned so
// the caller can hand it to the mail/SMS layer; an unknown email yields
// ErrNotFound which handlers translate into a generic response.
func (s *Service) ForgotPassword(email string) (string, error) {
	if _, err := s.repo.GetByEmail(email); err != nil {
		return "", err
	}
	code, err := numericCode(6)
	if err != nil {
		return "", err
	}
	if err := s.resets.SaveResetCode(email, code, time.Now().Add(15*time.Minute)); err != nil {
		return "", err
	}
	return code, nil
}

// ResetPassword consumes a previously issued code and replaces the password.
func (s *Service) ResetPassword(email, code, newPassword string) error {
	if err := s.resets.ConsumeResetCode(email, code); err != nil {
		return err
	}
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(u.ID, string(hashed), nowRFC3339())
}

func (s *Service) MarkVerified(id int) error {
	return s.repo.MarkVerified(id, nowRFC3339())
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func numericCode(digits int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < digits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}
