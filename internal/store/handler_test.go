package store

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
)

func newStoreTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	app := fiber.New()
	NewHandler(NewService(NewPostgresRepository(db))).RegisterPublicRoutes(app)
	return app, mock, func() { db.Close() }
}

func TestGetStores(t *testing.T) {
	app, mock, cleanup := newStoreTestApp(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"store_id", "vendor_id", "name", "slug", "logo", "description", "rating"}).
		AddRow(1, 11, "Gizmo World", "gizmo-world", "/stores/gizmo.png", "Gadgets and more", 4.6).
		AddRow(2, 12, "Plain Goods", "plain-goods", nil, nil, 4.1)
	mock.ExpectQuery("SELECT store_id, vendor_id, name, slug, logo").WithArgs(100).WillReturnRows(rows)

	req := httptest.NewRequest("GET", "/api/v1/stores", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	var stores []Store
	if err := json.Unmarshal(b, &stores); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(stores) != 2 || stores[0].Slug != "gizmo-world" || stores[0].Rating != 4.6 {
		t.Fatalf("unexpected stores: %+v", stores)
	}
	if stores[1].Logo != nil {
		t.Fatalf("expected nil logo for second store, got %v", *stores[1].Logo)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetStore(t *testing.T) {
	app, mock, cleanup := newStoreTestApp(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"store_id", "vendor_id", "name", "slug", "logo", "description", "rating"}).
		AddRow(7, 11, "Gizmo World", "gizmo-world", nil, "Gadgets and more", 4.6)
	mock.ExpectQuery("SELECT store_id, vendor_id, name, slug, logo").WithArgs(7).WillReturnRows(rows)

	req := httptest.NewRequest("GET", "/api/v1/stores/7", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	var s Store
	if err := json.Unmarshal(b, &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.StoreID != 7 || s.Description != "Gadgets and more" {
		t.Fatalf("unexpected store: %+v", s)
	}
}

func TestGetStore_NotFound(t *testing.T) {
	app, mock, cleanup := newStoreTestApp(t)
	defer cleanup()

	mock.ExpectQuery("SELECT store_id, vendor_id, name, slug, logo").WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"store_id", "vendor_id", "name", "slug", "logo", "description", "rating"}))

	req := httptest.NewRequest("GET", "/api/v1/stores/99", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "store not found") {
		t.Fatalf("unexpected body: %s", string(b))
	}
}
