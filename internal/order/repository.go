package order

import (
	"errors"
	"sync"
)

var (
	ErrNotFound       = errors.New("order not found")
	ErrEmptyCart      = errors.New("empty cart")
	ErrNotCancellable = errors.New("order can no longer be cancelled")
)

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ord Order) (Order, error)
	GetByID(id int) (Order, error)
	GetByNumber(number string) (Order, error)
	ListByUser(userID int) ([]Order, error)
	UpdateStatus(id int, to Status, updatedAt string) (Order, error)
}

// InMemoryRepository backs tests and local runs.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Create(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord.ID = r.nextID
	r.nextID++
	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) GetByNumber(number string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.Number == number {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0)
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UserID == userID {
			out = append(out, r.orders[i])
		}
	}
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(id int, to Status, updatedAt string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.orders {
		if o.ID == id {
			o.Status = to
			if updatedAt != "" {
				o.UpdatedAt = updatedAt
			}
			r.orders[i] = o
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}
