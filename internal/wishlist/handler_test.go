package wishlist

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

func makeAppWithWishlistHandler(h *Handler) *fiber.App {
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

func newWishlistTestApp(t *testing.T) *fiber.App {
	t.Helper()
	productRepo := product.NewInMemoryRepository([]product.Product{
		{ID: 7, Name: "Lamp", SellingPrice: 30},
		{ID: 8, Name: "Desk", SellingPrice: 120},
	})
	seed := []user.User{{ID: 9, Wishlist: []int{7}}}
	repo := NewInMemoryRepository(seed, product.NewService(productRepo))
	return makeAppWithWishlistHandler(NewHandler(NewService(repo)))
}

func TestWishlistRoutes_Flow(t *testing.T) {
	app := newWishlistTestApp(t)

	req := httptest.NewRequest("GET", "/api/v1/wishlist", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 unauthenticated, got %d", res.StatusCode)
	}

	req2 := httptest.NewRequest("GET", "/api/v1/wishlist", nil)
	req2.Header.Set("X-User-ID", "9")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res2.StatusCode)
	}
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), `"name":"Lamp"`) {
		t.Fatalf("expected seeded wishlist product, got %s", string(b2))
	}

	// adding a new product returns the updated id list
	req3 := httptest.NewRequest("POST", "/api/v1/wishlist", strings.NewReader(`{"productId":8}`))
	req3.Header.Set("Content-Type", "application/json")
	req3.Header.Set("X-User-ID", "9")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for add, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), "wishlistProductIds") {
		t.Fatalf("expected id list in response, got %s", string(b3))
	}

	// adding it again conflicts
	req4 := httptest.NewRequest("POST", "/api/v1/wishlist", strings.NewReader(`{"productId":8}`))
	req4.Header.Set("Content-Type", "application/json")
	req4.Header.Set("X-User-ID", "9")
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate add, got %d", res4.StatusCode)
	}

	// removing an absent product is a bad request
	req5 := httptest.NewRequest("DELETE", "/api/v1/wishlist/999", nil)
	req5.Header.Set("X-User-ID", "9")
	res5, _ := app.Test(req5)
	if res5.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for removing absent product, got %d", res5.StatusCode)
	}

	req6 := httptest.NewRequest("DELETE", "/api/v1/wishlist/8", nil)
	req6.Header.Set("X-User-ID", "9")
	res6, _ := app.Test(req6)
	if res6.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for remove, got %d", res6.StatusCode)
	}
}
