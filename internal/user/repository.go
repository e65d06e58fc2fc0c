package user

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
	ErrResetCodeInvalid   = errors.New("reset code invalid or expired")
)

type Repository interface {
	GetByID(id int) (User, error)
	GetByEmail(email string) (User, error)
	GetByPhone(phone string) (User, error)
	Create(u User) (User, error)
	Update(id int, u User) (User, error)
	UpdatePassword(id int, hashed, updatedAt string) error
	MarkVerified(id int, updatedAt string) error
	Delete(id int) error
}

// ResetRepository stores short-lived password reset codes keyed by email.
type ResetRepository interface {
	SaveResetCode(email, code string, expiresAt time.Time) error
	ConsumeResetCode(email, code string) error
}

// InMemoryRepository backs tests and local runs.
type InMemoryRepository struct {
	mu     sync.RWMutex
	users  []User
	nextID int
}

func NewInMemoryRepository(seed []User) *InMemoryRepository {
	r := &InMemoryRepository{users: make([]User, 0, len(seed)), nextID: 1}
	maxID := 0
	for _, u := range seed {
		r.users = append(r.users, u)
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) GetByID(id int) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByPhone(phone string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Create(u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == 0 {
		u.ID = r.nextID
		r.nextID++
	}
	r.users = append(r.users, u)
	return u, nil
}

func (r *InMemoryRepository) Update(id int, upd User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			u.Email = upd.Email
			u.FirstName = upd.FirstName
			u.LastName = upd.LastName
			u.Phone = upd.Phone
			u.AvatarPic = upd.AvatarPic
			u.MainAddressID = upd.MainAddressID
			if upd.UpdatedAt != "" {
				u.UpdatedAt = upd.UpdatedAt
			}
			r.users[i] = u
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) UpdatePassword(id int, hashed, updatedAt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			u.Password = hashed
			if updatedAt != "" {
				u.UpdatedAt = updatedAt
			}
			r.users[i] = u
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) MarkVerified(id int, updatedAt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			u.Verified = true
			if updatedAt != "" {
				u.UpdatedAt = updatedAt
			}
			r.users[i] = u
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type resetEntry struct {
	code      string
	expiresAt time.Time
}

// InMemoryResetRepository keeps reset codes in a map.
type InMemoryResetRepository struct {
	mu    sync.Mutex
	codes map[string]resetEntry
}

func NewInMemoryResetRepository() *InMemoryResetRepository {
	return &InMemoryResetRepository{codes: make(map[string]resetEntry)}
}

func (r *InMemoryResetRepository) SaveResetCode(email, code string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[email] = resetEntry{code: code, expiresAt: expiresAt}
	return nil
}

func (r *InMemoryResetRepository) ConsumeResetCode(email, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.codes[email]
	if !ok || e.code != code || time.Now().After(e.expiresAt) {
		return ErrResetCodeInvalid
	}
	delete(r.codes, email)
	return nil
}
