package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/shopzeo/storefront-api/internal/user"
)

const (
	codeTTL      = 5 * time.Minute
	sendCooldown = 60 * time.Second
)

type Service struct {
	repo  Repository
	users user.ServiceInterface
}

func NewService(repo Repository, users user.ServiceInterface) *Service {
	return &Service{repo: repo, users: users}
}

// Send issues a 6-digit code for the phone. Returns ErrCooldown if a code
// was issued within the last minute. The code is returned so the caller can
// hand it to the SMS layer.
func (s *Service) Send(phone string) (string, error) {
	last, err := s.repo.LastIssuedAt(phone)
	if err != nil {
		return "", err
	}
	if !last.IsZero() && time.Since(last) < sendCooldown {
		return "", ErrCooldown
	}

	code, err := numericCode(6)
	if err != nil {
		return "", err
	}
	now := time.Now()
	if err := s.repo.Save(phone, code, now, now.Add(codeTTL)); err != nil {
		return "", err
	}
	return code, nil
}

// Verify consumes the code and marks the matching user account verified.
func (s *Service) Verify(phone, code string) error {
	if err := s.repo.Consume(phone, code); err != nil {
		return err
	}
	u, err := s.users.GetByPhone(phone)
	if err != nil {
		// the code was valid; a missing account just means nothing to flag
		return nil
	}
	return s.users.MarkVerified(u.ID)
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
