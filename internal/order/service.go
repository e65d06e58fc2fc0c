package order

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopzeo/storefront-api/internal/product"
)

// freeShippingThreshold and flatShippingPrice implement the storefront
// shipping rule: orders at or above the threshold ship free.
const (
	freeShippingThreshold = 500.0
	flatShippingPrice     = 40.0
)

// Service provides business logic for orders. Totals are always recomputed
// server-side from current product prices; client-supplied totals are never
// trusted.
type Service struct {
	repo     Repository
	products product.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products}
}

// Create places an order from a cart snapshot.
func (s *Service) Create(userID int, items map[string]int, shipping ShippingInfo, paymentMethod string) (Order, error) {
	if userID <= 0 {
		return Order{}, errors.New("invalid user")
	}
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}
	if shipping.Name == "" || shipping.Phone == "" || shipping.Address == "" {
		return Order{}, errors.New("shipping name, phone and address are required")
	}
	if paymentMethod == "" {
		return Order{}, errors.New("payment method is required")
	}

	ids := make([]int, 0, len(items))
	for pidStr, qty := range items {
		pid, err := strconv.Atoi(pidStr)
		if err != nil || qty <= 0 {
			return Order{}, errors.New("invalid cart entry " + pidStr)
		}
		ids = append(ids, pid)
	}

	summaries, err := s.products.ListSummariesByIDs(ids)
	if err != nil {
		return Order{}, err
	}
	if len(summaries) != len(ids) {
		return Order{}, errors.New("cart references unknown products")
	}

	quantity := 0
	itemTotal := 0.0
	for _, sum := range summaries {
		qty := items[strconv.Itoa(sum.ProductID)]
		quantity += qty
		itemTotal += sum.SellingPrice * float64(qty)
	}

	shippingPrice := flatShippingPrice
	if itemTotal >= freeShippingThreshold {
		shippingPrice = 0
	}

	now := time.Now().UTC().Format(time.RFC3339)
	ord := Order{
		Number:        newOrderNumber(),
		UserID:        userID,
		Items:         items,
		Quantity:      quantity,
		ItemTotal:     itemTotal,
		ShippingPrice: shippingPrice,
		GrandTotal:    itemTotal + shippingPrice,
		Status:        StatusPending,
		Shipping:      shipping,
		PaymentMethod: paymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	created, err := s.repo.Create(ord)
	if err != nil {
		return Order{}, err
	}
	return s.enrich(created), nil
}

// ListByUser returns the user's orders, newest first, with cart entries
// enriched with product details.
func (s *Service) ListByUser(userID int) ([]Order, error) {
	orders, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i] = s.enrich(orders[i])
	}
	return orders, nil
}

// GetByNumber returns one order; orders belonging to other users read as not
// found.
func (s *Service) GetByNumber(userID int, number string) (Order, error) {
	ord, err := s.repo.GetByNumber(number)
	if err != nil {
		return Order{}, err
	}
	if ord.UserID != userID {
		return Order{}, ErrNotFound
	}
	return s.enrich(ord), nil
}

// Cancel moves an order to cancelled while it is still pending or confirmed.
func (s *Service) Cancel(userID, orderID int) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if ord.UserID != userID {
		return Order{}, ErrNotFound
	}
	if !ord.cancellable() {
		return Order{}, ErrNotCancellable
	}
	updated, err := s.repo.UpdateStatus(orderID, StatusCancelled, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return Order{}, err
	}
	return s.enrich(updated), nil
}

func (s *Service) enrich(ord Order) Order {
	if s.products == nil || len(ord.Items) == 0 {
		return ord
	}
	ids := make([]int, 0, len(ord.Items))
	for pidStr := range ord.Items {
		if pid, err := strconv.Atoi(pidStr); err == nil {
			ids = append(ids, pid)
		}
	}
	summaries, err := s.products.ListSummariesByIDs(ids)
	if err != nil {
		return ord
	}
	ord.Products = make(map[string]product.Summary, len(summaries))
	for _, sum := range summaries {
		ord.Products[strconv.Itoa(sum.ProductID)] = sum
	}
	return ord
}

func newOrderNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "SZ-" + raw[:10]
}
