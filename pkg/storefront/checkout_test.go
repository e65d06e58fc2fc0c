package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func newCheckoutFixture(t *testing.T, handler http.Handler) (*Checkout, *CartStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	storage, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	auth := NewAuthStore(storage)
	client := NewClient(srv.URL, auth)
	cart := NewCartStore(client, auth)
	return NewCheckout(client, cart), cart
}

func TestCheckoutSteps(t *testing.T) {
	flow, _ := newCheckoutFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	if flow.Step() != StepCartReview {
		t.Fatalf("expected cart review first")
	}

	// Back never goes below the first step
	flow.Back()
	if flow.Step() != StepCartReview {
		t.Fatalf("Back must floor at cart review")
	}

	if errs := flow.Next(); errs != nil {
		t.Fatalf("leaving cart review must not validate: %v", errs)
	}
	if flow.Step() != StepShipping {
		t.Fatalf("expected shipping step")
	}

	// empty form blocks with a field-keyed error map
	errs := flow.Next()
	if len(errs) != 3 {
		t.Fatalf("expected 3 field errors, got %v", errs)
	}
	if _, ok := errs["phone"]; !ok {
		t.Fatalf("expected phone error, got %v", errs)
	}
	if flow.Step() != StepShipping {
		t.Fatalf("validation failure must keep the shipping step")
	}

	flow.SetShipping(ShippingForm{Name: "Jo", Phone: "555-0101"})
	errs = flow.Next()
	if len(errs) != 1 || errs["address"] == "" {
		t.Fatalf("expected only the address error, got %v", errs)
	}

	flow.SetShipping(ShippingForm{Name: "Jo", Phone: "555-0101", Address: "12 Hill Rd"})
	if errs := flow.Next(); errs != nil {
		t.Fatalf("complete form must advance: %v", errs)
	}
	if flow.Step() != StepPayment {
		t.Fatalf("expected payment step")
	}

	flow.Back()
	if flow.Step() != StepShipping {
		t.Fatalf("Back from payment must land on shipping")
	}
}

func TestCheckoutValidationFailureSendsNothing(t *testing.T) {
	var calls int64
	flow, _ := newCheckoutFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(`[]`))
	}))

	flow.Next() // to shipping
	flow.Next() // fails validation
	if atomic.LoadInt64(&calls) != 0 {
		t.Fatalf("validation failure must not reach the network")
	}
}

func TestCheckoutSubmit(t *testing.T) {
	var orderCalls int64
	var gotOrder createOrderRequest
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == EndpointOrders && r.Method == http.MethodPost:
			atomic.AddInt64(&orderCalls, 1)
			json.NewDecoder(r.Body).Decode(&gotOrder)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"orderId":1,"orderNumber":"SZ-ABCDEF0123","grandPrice":60,"status":"pending","paymentMethod":"cod"}`))
		case r.URL.Path == "/api/v1/cart" && r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.Write([]byte(`[{"productId":1,"sellingPrice":10,"quantity":2}]`))
		}
	})
	flow, cart := newCheckoutFixture(t, handler)

	if err := cart.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	// Submit before the payment step is refused
	if _, err := flow.Submit(context.Background()); err != ErrCheckoutIncomplete {
		t.Fatalf("expected ErrCheckoutIncomplete, got %v", err)
	}

	flow.Next()
	flow.SetShipping(ShippingForm{Name: "Jo", Phone: "555-0101", Address: "12 Hill Rd"})
	flow.Next()

	if _, err := flow.Submit(context.Background()); err != ErrPaymentMethodRequired {
		t.Fatalf("expected ErrPaymentMethodRequired, got %v", err)
	}

	flow.SetPaymentMethod("cod")
	confirmation, err := flow.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if confirmation.Number != "SZ-ABCDEF0123" || confirmation.GrandTotal != 60 {
		t.Fatalf("unexpected confirmation: %+v", confirmation)
	}
	if atomic.LoadInt64(&orderCalls) != 1 {
		t.Fatalf("expected exactly one order post, got %d", orderCalls)
	}
	if gotOrder.Cart["1"] != 2 || gotOrder.PaymentMethod != "cod" {
		t.Fatalf("unexpected order payload: %+v", gotOrder)
	}
	if gotOrder.Shipping == nil || gotOrder.Shipping.Name != "Jo" {
		t.Fatalf("expected inline shipping snapshot: %+v", gotOrder.Shipping)
	}

	// the flow resets and the cart mirror is empty
	if flow.Step() != StepCartReview {
		t.Fatalf("expected flow reset to cart review")
	}
	if len(cart.Items()) != 0 {
		t.Fatalf("expected cart mirror cleared after submit")
	}
}

func TestCheckoutUseStoredAddress(t *testing.T) {
	var gotOrder createOrderRequest
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == EndpointOrders && r.Method == http.MethodPost:
			json.NewDecoder(r.Body).Decode(&gotOrder)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"orderId":2,"orderNumber":"SZ-0000000000","grandPrice":45,"status":"pending","paymentMethod":"card"}`))
		case r.URL.Path == "/api/v1/cart" && r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.Write([]byte(`[{"productId":2,"sellingPrice":5,"quantity":1}]`))
		}
	})
	flow, cart := newCheckoutFixture(t, handler)
	if err := cart.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	flow.Next()
	flow.UseAddress(7)
	// a selected stored address skips form validation
	if errs := flow.Next(); errs != nil {
		t.Fatalf("stored address must skip validation: %v", errs)
	}
	flow.SetPaymentMethod("card")

	if _, err := flow.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if gotOrder.AddressID == nil || *gotOrder.AddressID != 7 {
		t.Fatalf("expected addressId 7, got %+v", gotOrder.AddressID)
	}
	if gotOrder.Shipping != nil {
		t.Fatalf("stored address must not send an inline snapshot")
	}
}
