package storefront

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// CartItem is a cart line as the API returns it.
type CartItem struct {
	RawProduct
	Quantity int `json:"quantity"`
}

// CartStore mirrors the server-side cart. Every mutation response carries
// the full refetched cart, which replaces the local copy wholesale. A
// generation counter guards each apply so a response from an older request
// can never overwrite state written by a newer one.
type CartStore struct {
	mu         sync.RWMutex
	client     *Client
	items      []CartItem
	generation uint64
}

// NewCartStore wires the mirror to the auth store: becoming authenticated
// triggers an initial fetch, becoming anonymous drops local state without a
// network call.
func NewCartStore(client *Client, auth *AuthStore) *CartStore {
	s := &CartStore{client: client}
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

func (s *CartStore) Items() []CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Subtotal sums price times quantity over the mirror.
func (s *CartStore) Subtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, item := range s.items {
		total += item.SellingPrice * float64(item.Quantity)
	}
	return total
}

// Refresh fetches the full cart and applies it unless a newer request has
// started in the meantime.
func (s *CartStore) Refresh(ctx context.Context) error {
	g := s.begin()
	payload, err := s.client.Call(ctx, EndpointCart, nil)
	if err != nil {
		return err
	}
	var items []CartItem
	if err := unmarshal(payload, &items); err != nil {
		return err
	}
	s.apply(g, items)
	return nil
}

// Add posts a signed quantity delta for the product.
func (s *CartStore) Add(ctx context.Context, productID, quantity int) error {
	return s.mutate(ctx, http.MethodPost, EndpointCart, cartRequest{ProductID: productID, Quantity: quantity})
}

// SetQuantity stores an absolute quantity; zero removes the line.
func (s *CartStore) SetQuantity(ctx context.Context, productID, quantity int) error {
	return s.mutate(ctx, http.MethodPut, EndpointCart, cartRequest{ProductID: productID, Quantity: quantity})
}

// Remove drops the product's line from the cart.
func (s *CartStore) Remove(ctx context.Context, productID int) error {
	return s.mutate(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", EndpointCart, productID), nil)
}

// Clear empties the cart server-side and locally.
func (s *CartStore) Clear(ctx context.Context) error {
	g := s.begin()
	if _, err := s.client.Call(ctx, EndpointCart, &CallOptions{Method: http.MethodDelete}); err != nil {
		return err
	}
	s.apply(g, nil)
	return nil
}

type cartRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

func (s *CartStore) mutate(ctx context.Context, method, path string, body any) error {
	g := s.begin()
	opts := &CallOptions{Method: method}
	if body != nil {
		opts.Body = body
	}
	payload, err := s.client.Call(ctx, path, opts)
	if err != nil {
		return err
	}
	var items []CartItem
	if err := unmarshal(payload, &items); err != nil {
		return err
	}
	s.apply(g, items)
	return nil
}

func (s *CartStore) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// apply installs items unless a newer request has bumped the generation.
func (s *CartStore) apply(g uint64, items []CartItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g < s.generation {
		return false
	}
	s.items = items
	return true
}
