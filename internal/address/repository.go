package address

import (
	"errors"
	"sync"
)

var (
	ErrNotFound       = errors.New("address not found")
	ErrInvalidAddress = errors.New("name, phone and description are required")
)

type Repository interface {
	List(userID int) ([]Address, error)
	Get(userID, addressID int) (Address, error)
	Add(a Address) (Address, error)
	Update(a Address) (Address, error)
	Delete(userID, addressID int) error
}

// InMemoryRepository backs tests and local runs.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Address
	nextID  int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) List(userID int) ([]Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Address, 0)
	for _, a := range r.storage {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Get(userID, addressID int) (Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.storage {
		if a.UserID == userID && a.AddressID == addressID {
			return a, nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) Add(a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.AddressID = r.nextID
	r.nextID++
	r.storage = append(r.storage, a)
	return a, nil
}

func (r *InMemoryRepository) Update(a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, cur := range r.storage {
		if cur.UserID == a.UserID && cur.AddressID == a.AddressID {
			cur.Name = a.Name
			cur.Phone = a.Phone
			cur.Description = a.Description
			cur.UpdatedAt = a.UpdatedAt
			r.storage[i] = cur
			return cur, nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(userID, addressID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.storage {
		if a.UserID == userID && a.AddressID == addressID {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
