package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestCall_ServerMessageSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"Email already exists"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.Call(context.Background(), "/api/v1/auth/sign-up", &CallOptions{Method: http.MethodPost, Body: map[string]string{}})
	if err == nil {
		t.Fatalf("expected an error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Error() != "Email already exists" {
		t.Fatalf("expected the server message verbatim, got %q", apiErr.Error())
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", apiErr.StatusCode)
	}
}

func TestCall_FallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>gateway</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.Call(context.Background(), "/api/v1/products", nil)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if err.Error() != "request failed with status 502" {
		t.Fatalf("expected generic fallback, got %q", err.Error())
	}
}

func TestCall_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	payload, err := client.Call(context.Background(), "/api/v1/cart", &CallOptions{Method: http.MethodDelete})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload != nil {
		t.Fatalf("expected nil payload for 204, got %s", payload)
	}
}

func TestCall_BearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticToken("tok-123"))
	if _, err := client.Call(context.Background(), "/api/v1/profile", nil); err != nil {
		t.Fatalf("call: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}

	// no token means no header
	client2 := NewClient(srv.URL, staticToken(""))
	if _, err := client2.Call(context.Background(), "/api/v1/products", nil); err != nil {
		t.Fatalf("call: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no auth header, got %q", gotAuth)
	}
}

func TestCall_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL, nil)
	if _, err := client.Call(ctx, "/api/v1/products", nil); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestListProducts_RendersEveryItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{"productId":1,"name":"A","sellingPrice":80,"mrp":100},
				{"productId":2,"name":"B","sellingPrice":50,"mrp":50},
				{"productId":3,"name":"C","sellingPrice":10,"mrp":0}
			],
			"page":1,"totalPages":1,"totalItems":3
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	page, err := ListProducts(context.Background(), client, ProductQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 3 {
		t.Fatalf("expected all 3 products, got %d", len(page.Items))
	}
	if page.Items[0].Discount != 20 {
		t.Fatalf("expected 20%% discount on the first product, got %d", page.Items[0].Discount)
	}
	if page.Items[1].Discount != 0 || page.Items[2].Discount != 0 {
		t.Fatalf("expected no discount when mrp is not above price")
	}
}
