package order

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopzeo/storefront-api/internal/address"
	"github.com/shopzeo/storefront-api/internal/cart"
	"github.com/shopzeo/storefront-api/internal/product"
	"github.com/shopzeo/storefront-api/internal/user"
)

type orderTestEnv struct {
	app   *fiber.App
	repo  *InMemoryRepository
	carts *cart.Service
}

func newOrderTestEnv(t *testing.T) orderTestEnv {
	t.Helper()

	productRepo := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Mug", SellingPrice: 5},
		{ID: 2, Name: "Kettle", SellingPrice: 10},
		{ID: 3, Name: "Sofa", SellingPrice: 600},
	})
	productService := product.NewService(productRepo)

	repo := NewInMemoryRepository()
	service := NewService(repo, productService)

	addressService := address.NewService(address.NewInMemoryRepository())
	cartService := cart.NewService(cart.NewInMemoryRepository([]user.User{
		{ID: 5, Cart: map[int]int{1: 2, 2: 1}},
	}, productService))

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				tok := &jwt.Token{Claims: claims}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	NewHandler(service, addressService, cartService).RegisterProtectedRoutes(app)

	return orderTestEnv{app: app, repo: repo, carts: cartService}
}

func TestCreateOrder_RecomputesTotalsAndClearsCart(t *testing.T) {
	env := newOrderTestEnv(t)

	// client-supplied totals would be ignored; only cart and shipping matter
	body := `{"cart":{"1":2,"2":1},"shipping":{"name":"Jo","phone":"555-0101","address":"12 Hill Rd"},"paymentMethod":"cod"}`
	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "5")
	res, _ := env.app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		b, _ := io.ReadAll(res.Body)
		t.Fatalf("expected 201, got %d: %s", res.StatusCode, b)
	}

	var ord Order
	b, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(b, &ord); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if ord.ItemTotal != 20 {
		t.Fatalf("expected item total 20, got %v", ord.ItemTotal)
	}
	if ord.ShippingPrice != 40 || ord.GrandTotal != 60 {
		t.Fatalf("expected flat shipping below the threshold, got shipping %v grand %v", ord.ShippingPrice, ord.GrandTotal)
	}
	if ord.Status != StatusPending {
		t.Fatalf("expected pending status, got %q", ord.Status)
	}
	if !strings.HasPrefix(ord.Number, "SZ-") || len(ord.Number) != 13 {
		t.Fatalf("unexpected order number %q", ord.Number)
	}
	if ord.Products["1"].Name != "Mug" {
		t.Fatalf("expected enriched cart products, got %+v", ord.Products)
	}

	// the server-side cart is cleared after the order is placed
	items, err := env.carts.Get(5)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart after order, got %d lines", len(items))
	}
}

func TestCreateOrder_FreeShippingAboveThreshold(t *testing.T) {
	env := newOrderTestEnv(t)

	body := `{"cart":{"3":1},"shipping":{"name":"Jo","phone":"555-0101","address":"12 Hill Rd"},"paymentMethod":"card"}`
	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "5")
	res, _ := env.app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	var ord Order
	b, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(b, &ord); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if ord.ShippingPrice != 0 || ord.GrandTotal != 600 {
		t.Fatalf("expected free shipping at 600, got shipping %v grand %v", ord.ShippingPrice, ord.GrandTotal)
	}
}

func TestCreateOrder_Rejections(t *testing.T) {
	env := newOrderTestEnv(t)

	// empty cart
	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(`{"cart":{},"shipping":{"name":"a","phone":"b","address":"c"},"paymentMethod":"cod"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "5")
	res, _ := env.app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for empty cart, got %d", res.StatusCode)
	}

	// unknown product
	req2 := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(`{"cart":{"99":1},"shipping":{"name":"a","phone":"b","address":"c"},"paymentMethod":"cod"}`))
	req2.Header.Set("Content-Type", "application/json")
	req2.Header.Set("X-User-ID", "5")
	res2, _ := env.app.Test(req2)
	if res2.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown product, got %d", res2.StatusCode)
	}

	// missing shipping
	req3 := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(`{"cart":{"1":1},"paymentMethod":"cod"}`))
	req3.Header.Set("Content-Type", "application/json")
	req3.Header.Set("X-User-ID", "5")
	res3, _ := env.app.Test(req3)
	if res3.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing shipping, got %d", res3.StatusCode)
	}
}

func TestOrderLookupAndOwnership(t *testing.T) {
	env := newOrderTestEnv(t)

	body := `{"cart":{"1":1},"shipping":{"name":"Jo","phone":"555-0101","address":"12 Hill Rd"},"paymentMethod":"cod"}`
	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "5")
	res, _ := env.app.Test(req)
	var ord Order
	b, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(b, &ord); err != nil {
		t.Fatalf("decode order: %v", err)
	}

	// owner can read by number
	req2 := httptest.NewRequest("GET", "/api/v1/orders/number/"+ord.Number, nil)
	req2.Header.Set("X-User-ID", "5")
	res2, _ := env.app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for owner lookup, got %d", res2.StatusCode)
	}

	// another user reads not found
	req3 := httptest.NewRequest("GET", "/api/v1/orders/number/"+ord.Number, nil)
	req3.Header.Set("X-User-ID", "6")
	res3, _ := env.app.Test(req3)
	if res3.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for other user, got %d", res3.StatusCode)
	}

	// list shows the order
	req4 := httptest.NewRequest("GET", "/api/v1/orders", nil)
	req4.Header.Set("X-User-ID", "5")
	res4, _ := env.app.Test(req4)
	b4, _ := io.ReadAll(res4.Body)
	if !strings.Contains(string(b4), ord.Number) {
		t.Fatalf("expected order %s in listing, got %s", ord.Number, string(b4))
	}
}

func TestCancelOrder(t *testing.T) {
	env := newOrderTestEnv(t)

	body := `{"cart":{"1":1},"shipping":{"name":"Jo","phone":"555-0101","address":"12 Hill Rd"},"paymentMethod":"cod"}`
	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "5")
	res, _ := env.app.Test(req)
	var ord Order
	b, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(b, &ord); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	id := strconv.Itoa(ord.ID)

	req2 := httptest.NewRequest("POST", "/api/v1/orders/"+id+"/cancel", nil)
	req2.Header.Set("X-User-ID", "5")
	res2, _ := env.app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for cancel, got %d", res2.StatusCode)
	}
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), `"status":"cancelled"`) {
		t.Fatalf("expected cancelled status, got %s", string(b2))
	}

	// a second cancel conflicts
	req3 := httptest.NewRequest("POST", "/api/v1/orders/"+id+"/cancel", nil)
	req3.Header.Set("X-User-ID", "5")
	res3, _ := env.app.Test(req3)
	if res3.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for second cancel, got %d", res3.StatusCode)
	}
}

func TestCancelOrder_RejectedOnceShipped(t *testing.T) {
	env := newOrderTestEnv(t)

	body := `{"cart":{"1":1},"shipping":{"name":"Jo","phone":"555-0101","address":"12 Hill Rd"},"paymentMethod":"cod"}`
	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "5")
	res, _ := env.app.Test(req)
	var ord Order
	b, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(b, &ord); err != nil {
		t.Fatalf("decode order: %v", err)
	}

	if _, err := env.repo.UpdateStatus(ord.ID, StatusShipped, ""); err != nil {
		t.Fatalf("mark shipped: %v", err)
	}

	req2 := httptest.NewRequest("POST", "/api/v1/orders/"+strconv.Itoa(ord.ID)+"/cancel", nil)
	req2.Header.Set("X-User-ID", "5")
	res2, _ := env.app.Test(req2)
	if res2.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for cancelling a shipped order, got %d", res2.StatusCode)
	}
}
