package wishlist

import (
	"errors"
	"sync"

	"github.com/shopzeo/storefront-api/internal/product"
	"github.com/shopzeo/storefront-api/internal/user"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyListed = errors.New("product already in wishlist")
	ErrNotListed     = errors.New("product not in wishlist")
)

// Repository provides access to wishlist operations.
type Repository interface {
	Add(userID, productID int, updatedAt string) ([]int, error)
	Remove(userID, productID int, updatedAt string) ([]int, error)
	Get(userID int) ([]product.Summary, error)
}

// InMemoryRepository backs tests and local runs.
type InMemoryRepository struct {
	mu       sync.RWMutex
	users    []user.User
	products product.ServiceInterface
}

func NewInMemoryRepository(seed []user.User, products product.ServiceInterface) *InMemoryRepository {
	r := &InMemoryRepository{users: make([]user.User, 0, len(seed)), products: products}
	r.users = append(r.users, seed...)
	return r
}

func (r *InMemoryRepository) Add(userID, productID int, updatedAt string) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == userID {
			for _, pid := range u.Wishlist {
				if pid == productID {
					return nil, ErrAlreadyListed
				}
			}
			u.Wishlist = append(u.Wishlist, productID)
			if updatedAt != "" {
				u.UpdatedAt = updatedAt
			}
			r.users[i] = u
			res := make([]int, len(u.Wishlist))
			copy(res, u.Wishlist)
			return res, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) Remove(userID, productID int, updatedAt string) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == userID {
			found := false
			next := make([]int, 0, len(u.Wishlist))
			for _, pid := range u.Wishlist {
				if pid == productID {
					found = true
					continue
				}
				next = append(next, pid)
			}
			if !found {
				return nil, ErrNotListed
			}
			u.Wishlist = next
			if updatedAt != "" {
				u.UpdatedAt = updatedAt
			}
			r.users[i] = u
			res := make([]int, len(u.Wishlist))
			copy(res, u.Wishlist)
			return res, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) Get(userID int) ([]product.Summary, error) {
	r.mu.RLock()
	var ids []int
	found := false
	for _, u := range r.users {
		if u.ID == userID {
			ids = append(ids, u.Wishlist...)
			found = true
			break
		}
	}
	r.mu.RUnlock()
	if !found {
		return nil, ErrNotFound
	}

	if r.products != nil {
		return r.products.ListSummariesByIDs(ids)
	}
	out := make([]product.Summary, 0, len(ids))
	for _, pid := range ids {
		out = append(out, product.Summary{ProductID: pid})
	}
	return out, nil
}
