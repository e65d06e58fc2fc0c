package cart

import (
	"errors"
	"sort"
	"sync"

	"github.com/shopzeo/storefront-api/internal/product"
	"github.com/shopzeo/storefront-api/internal/user"
)

var ErrNotFound = errors.New("user not found")

// CartItem is a cart line: the product summary plus its quantity.
type CartItem struct {
	product.Summary
	Quantity int `json:"quantity"`
}

// Repository provides access to cart state. Quantities are deltas on Add so
// the same endpoint increments and decrements; a line dropping to zero or
// below is removed.
type Repository interface {
	Add(userID, productID, qty int, updatedAt string) error
	Set(userID, productID, qty int, updatedAt string) error
	Get(userID int) ([]CartItem, error)
	Clear(userID int, updatedAt string) error
}

// InMemoryRepository backs tests and local runs. Product details are
// resolved from the provided product repository.
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

func (r *InMemoryRepository) Add(userID, productID, qty int, updatedAt string) error {
	return r.mutate(userID, updatedAt, func(cart map[int]int) {
		cart[productID] += qty
		if cart[productID] <= 0 {
			delete(cart, productID)
		}
	})
}

func (r *InMemoryRepository) Set(userID, productID, qty int, updatedAt string) error {
	return r.mutate(userID, updatedAt, func(cart map[int]int) {
		if qty <= 0 {
			delete(cart, productID)
			return
		}
		cart[productID] = qty
	})
}

func (r *InMemoryRepository) Clear(userID int, updatedAt string) error {
	return r.mutate(userID, updatedAt, func(cart map[int]int) {
		for k := range cart {
			delete(cart, k)
		}
	})
}

func (r *InMemoryRepository) mutate(userID int, updatedAt string, fn func(map[int]int)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == userID {
			if u.Cart == nil {
				u.Cart = make(map[int]int)
			}
			fn(u.Cart)
			if updatedAt != "" {
				u.UpdatedAt = updatedAt
			}
			r.users[i] = u
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Get(userID int) ([]CartItem, error) {
	r.mu.RLock()
	cart := map[int]int{}
	found := false
	for _, u := range r.users {
		if u.ID == userID {
			for pid, q := range u.Cart {
				cart[pid] = q
			}
			found = true
			break
		}
	}
	r.mu.RUnlock()
	if !found {
		return nil, ErrNotFound
	}

	ids := make([]int, 0, len(cart))
	for pid := range cart {
		ids = append(ids, pid)
	}
	sort.Ints(ids)

	out := make([]CartItem, 0, len(ids))
	if r.products != nil {
		summaries, err := r.products.ListSummariesByIDs(ids)
		if err != nil {
			return nil, err
		}
		seen := map[int]bool{}
		for _, s := range summaries {
			out = append(out, CartItem{Summary: s, Quantity: cart[s.ProductID]})
			seen[s.ProductID] = true
		}
		for _, pid := range ids {
			if !seen[pid] {
				out = append(out, CartItem{Summary: product.Summary{ProductID: pid}, Quantity: cart[pid]})
			}
		}
		return out, nil
	}

	for _, pid := range ids {
		out = append(out, CartItem{Summary: product.Summary{ProductID: pid}, Quantity: cart[pid]})
	}
	return out, nil
}
