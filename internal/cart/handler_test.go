package cart

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopzeo/storefront-api/internal/product"
	"github.com/shopzeo/storefront-api/internal/user"
)

func makeAppWithCartHandler(h *Handler) *fiber.App {
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
	h.RegisterProtectedRoutes(app)
	return app
}

func newCartTestApp(t *testing.T) *fiber.App {
	t.Helper()
	productRepo := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Mug", SellingPrice: 5},
		{ID: 2, Name: "Kettle", SellingPrice: 10},
	})
	seed := []user.User{{ID: 42, Cart: map[int]int{1: 1}}}
	repo := NewInMemoryRepository(seed, product.NewService(productRepo))
	return makeAppWithCartHandler(NewHandler(NewService(repo)))
}

func TestCartRoutes_Flow(t *testing.T) {
	app := newCartTestApp(t)

	// unauthorized access is blocked
	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated GET, got %d", res.StatusCode)
	}

	// authorized GET returns the seeded line
	req2 := httptest.NewRequest("GET", "/api/v1/cart", nil)
	req2.Header.Set("X-User-ID", "42")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for authenticated GET, got %d", res2.StatusCode)
	}
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), `"quantity":1`) {
		t.Fatalf("expected seeded quantity 1, got %s", string(b2))
	}
	if !strings.Contains(string(b2), `"name":"Mug"`) {
		t.Fatalf("expected product details in cart line, got %s", string(b2))
	}

	// add product 2 with quantity 2; response is the full refetched cart
	req3 := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"productId":2,"quantity":2}`))
	req3.Header.Set("Content-Type", "application/json")
	req3.Header.Set("X-User-ID", "42")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for add, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), `"quantity":2`) || !strings.Contains(string(b3), `"name":"Kettle"`) {
		t.Fatalf("expected full cart with new line, got %s", string(b3))
	}

	// add again, delta increments
	req4 := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"productId":2,"quantity":1}`))
	req4.Header.Set("Content-Type", "application/json")
	req4.Header.Set("X-User-ID", "42")
	res4, _ := app.Test(req4)
	b4, _ := io.ReadAll(res4.Body)
	if !strings.Contains(string(b4), `"quantity":3`) {
		t.Fatalf("expected quantity 3 after second add, got %s", string(b4))
	}

	// negative delta decrements
	req5 := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"productId":2,"quantity":-2}`))
	req5.Header.Set("Content-Type", "application/json")
	req5.Header.Set("X-User-ID", "42")
	res5, _ := app.Test(req5)
	b5, _ := io.ReadAll(res5.Body)
	if !strings.Contains(string(b5), `"quantity":1`) {
		t.Fatalf("expected quantity 1 after decrement, got %s", string(b5))
	}

	// PUT stores an absolute quantity
	req6 := httptest.NewRequest("PUT", "/api/v1/cart", strings.NewReader(`{"productId":2,"quantity":5}`))
	req6.Header.Set("Content-Type", "application/json")
	req6.Header.Set("X-User-ID", "42")
	res6, _ := app.Test(req6)
	b6, _ := io.ReadAll(res6.Body)
	if !strings.Contains(string(b6), `"quantity":5`) {
		t.Fatalf("expected quantity 5 after set, got %s", string(b6))
	}

	// DELETE one line
	req7 := httptest.NewRequest("DELETE", "/api/v1/cart/2", nil)
	req7.Header.Set("X-User-ID", "42")
	res7, _ := app.Test(req7)
	if res7.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for remove, got %d", res7.StatusCode)
	}
	b7, _ := io.ReadAll(res7.Body)
	if strings.Contains(string(b7), `"name":"Kettle"`) {
		t.Fatalf("expected product 2 removed, got %s", string(b7))
	}

	// clear empties the cart with 204
	req8 := httptest.NewRequest("DELETE", "/api/v1/cart", nil)
	req8.Header.Set("X-User-ID", "42")
	res8, _ := app.Test(req8)
	if res8.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204 for clear, got %d", res8.StatusCode)
	}
	req9 := httptest.NewRequest("GET", "/api/v1/cart", nil)
	req9.Header.Set("X-User-ID", "42")
	res9, _ := app.Test(req9)
	b9, _ := io.ReadAll(res9.Body)
	if strings.Contains(string(b9), "productId") {
		t.Fatalf("expected empty cart after clear, got %s", string(b9))
	}
}

func TestCartRoutes_BadProductID(t *testing.T) {
	app := newCartTestApp(t)

	req := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"productId":0,"quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for productId 0, got %d", res.StatusCode)
	}
}
