package storefront

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
)

// Checkout steps, in order.
type CheckoutStep int

const (
	StepCartReview CheckoutStep = iota
	StepShipping
	StepPayment
)

// ShippingForm is the address form filled on the shipping step.
type ShippingForm struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

var (
	// ErrCheckoutIncomplete is returned by Submit before the payment step.
	ErrCheckoutIncomplete = errors.New("checkout is not on the payment step")
	// ErrPaymentMethodRequired is returned by Submit when no method is set.
	ErrPaymentMethodRequired = errors.New("payment method is required")
)

// OrderConfirmation is the subset of the created order shown after checkout.
type OrderConfirmation struct {
	ID            int     `json:"orderId"`
	Number        string  `json:"orderNumber"`
	GrandTotal    float64 `json:"grandPrice"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod"`
}

// Checkout drives the three-step order flow: cart review, shipping form,
// payment method. The step only moves one position at a time.
type Checkout struct {
	mu       sync.Mutex
	client   *Client
	cart     *CartStore
	step     CheckoutStep
	shipping ShippingForm
	// stored address id takes precedence over the inline form when set
	addressID     *int
	paymentMethod string
}

func NewCheckout(client *Client, cart *CartStore) *Checkout {
	return &Checkout{client: client, cart: cart}
}

func (f *Checkout) Step() CheckoutStep {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Back moves one step earlier, never before cart review.
func (f *Checkout) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step > StepCartReview {
		f.step--
	}
}

func (f *Checkout) SetShipping(form ShippingForm) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shipping = form
	f.addressID = nil
}

// UseAddress selects a stored address instead of the inline form.
func (f *Checkout) UseAddress(addressID int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addressID = &addressID
}

func (f *Checkout) SetPaymentMethod(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paymentMethod = method
}

// Next advances one step. Leaving the shipping step runs field-presence
// validation; a non-empty error map keeps the flow on the shipping step and
// nothing is sent over the network.
func (f *Checkout) Next() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.step {
	case StepCartReview:
		f.step = StepShipping
	case StepShipping:
		if f.addressID == nil {
			if errs := validateShipping(f.shipping); len(errs) > 0 {
				return errs
			}
		}
		f.step = StepPayment
	}
	return nil
}

func validateShipping(form ShippingForm) map[string]string {
	errs := make(map[string]string)
	if form.Name == "" {
		errs["name"] = "name is required"
	}
	if form.Phone == "" {
		errs["phone"] = "phone is required"
	}
	if form.Address == "" {
		errs["address"] = "address is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type createOrderRequest struct {
	Cart          map[string]int `json:"cart"`
	AddressID     *int           `json:"addressId,omitempty"`
	Shipping      *ShippingForm  `json:"shipping,omitempty"`
	PaymentMethod string         `json:"paymentMethod"`
}

// Submit posts the order once, clears the cart mirror and resets the flow to
// the first step. It refuses to run before the payment step.
func (f *Checkout) Submit(ctx context.Context) (OrderConfirmation, error) {
	f.mu.Lock()
	if f.step != StepPayment {
		f.mu.Unlock()
		return OrderConfirmation{}, ErrCheckoutIncomplete
	}
	if f.paymentMethod == "" {
		f.mu.Unlock()
		return OrderConfirmation{}, ErrPaymentMethodRequired
	}

	req := createOrderRequest{
		Cart:          make(map[string]int),
		AddressID:     f.addressID,
		PaymentMethod: f.paymentMethod,
	}
	if f.addressID == nil {
		shipping := f.shipping
		req.Shipping = &shipping
	}
	f.mu.Unlock()

	for _, item := range f.cart.Items() {
		req.Cart[strconv.Itoa(item.ID)] = item.Quantity
	}

	payload, err := f.client.Call(ctx, EndpointOrders, &CallOptions{Method: http.MethodPost, Body: req})
	if err != nil {
		return OrderConfirmation{}, err
	}
	var confirmation OrderConfirmation
	if err := unmarshal(payload, &confirmation); err != nil {
		return OrderConfirmation{}, err
	}

	if err := f.cart.Clear(ctx); err != nil {
		return confirmation, err
	}

	f.mu.Lock()
	f.step = StepCartReview
	f.shipping = ShippingForm{}
	f.addressID = nil
	f.paymentMethod = ""
	f.mu.Unlock()

	return confirmation, nil
}
