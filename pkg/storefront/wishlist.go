package storefront

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// WishlistStore mirrors the server-side wishlist. Mutations call the API and
// then refetch the full list; the same generation guard as the cart keeps a
// stale refetch from clobbering newer state.
type WishlistStore struct {
	mu         sync.RWMutex
	client     *Client
	items      []RawProduct
	generation uint64
}

func NewWishlistStore(client *Client, auth *AuthStore) *WishlistStore {
	s := &WishlistStore{client: client}
	auth.OnChange(func(authenticated bool) {
		if authenticated {
			_ = s.Refresh(context.Background())
		} else {
			s.mu.Lock()
			s.generation++
			s.items = nil
			s.mu.Unlock()
		}
	})
	return s
}

func (s *WishlistStore) Items() []RawProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RawProduct, len(s.items))
	copy(out, s.items)
	return out
}

// Contains reports whether the product is wishlisted.
func (s *WishlistStore) Contains(productID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == productID {
			return true
		}
	}
	return false
}

func (s *WishlistStore) Refresh(ctx context.Context) error {
	g := s.begin()
	payload, err := s.client.Call(ctx, EndpointWishlist, nil)
	if err != nil {
		return err
	}
	var items []RawProduct
	if err := unmarshal(payload, &items); err != nil {
		return err
	}
	s.apply(g, items)
	return nil
}

func (s *WishlistStore) Add(ctx context.Context, productID int) error {
	_, err := s.client.Call(ctx, EndpointWishlist, &CallOptions{
		Method: http.MethodPost,
		Body:   map[string]int{"productId": productID},
	})
	if err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *WishlistStore) Remove(ctx context.Context, productID int) error {
	_, err := s.client.Call(ctx, fmt.Sprintf("%s/%d", EndpointWishlist, productID), &CallOptions{
		Method: http.MethodDelete,
	})
	if err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *WishlistStore) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

func (s *WishlistStore) apply(g uint64, items []RawProduct) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g < s.generation {
		return false
	}
	s.items = items
	return true
}
