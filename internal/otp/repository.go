package otp

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrCodeInvalid = errors.New("code invalid or expired")
	ErrCooldown    = errors.New("code requested too recently")
)

// Repository stores one pending code per phone number.
type Repository interface {
	Save(phone, code string, issuedAt, expiresAt time.Time) error
	LastIssuedAt(phone string) (time.Time, error)
	Consume(phone, code string) error
}

type codeEntry struct {
	code      string
	issuedAt  time.Time
	expiresAt time.Time
}

type InMemoryRepository struct {
	mu    sync.Mutex
	codes map[string]codeEntry
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{codes: make(map[string]codeEntry)}
}

func (r *InMemoryRepository) Save(phone, code string, issuedAt, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[phone] = codeEntry{code: code, issuedAt: issuedAt, expiresAt: expiresAt}
	return nil
}

func (r *InMemoryRepository) LastIssuedAt(phone string) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.codes[phone]
	if !ok {
		return time.Time{}, nil
	}
	return e.issuedAt, nil
}

func (r *InMemoryRepository) Consume(phone, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.codes[phone]
	if !ok || e.code != code || time.Now().After(e.expiresAt) {
		return ErrCodeInvalid
	}
	delete(r.codes, phone)
	return nil
}
