package address

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"address_id", "user_id", "name", "phone", "description", "created_at", "updated_at"}).
		AddRow(1, 5, "Home", "555-0101", "12 Hill Rd", "2026-01-01T00:00:00Z", "2026-01-01T00:00:00Z").
		AddRow(2, 5, "Office", "555-0102", "9 Market St", "2026-01-02T00:00:00Z", "2026-01-02T00:00:00Z")
	mock.ExpectQuery("SELECT address_id, user_id").WithArgs(5).WillReturnRows(rows)

	out, err := repo.List(5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 addresses, got %d", len(out))
	}
	if out[0].Name != "Home" || out[1].Description != "9 Market St" {
		t.Fatalf("unexpected rows: %+v", out)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGet_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT address_id, user_id").WithArgs(5, 99).
		WillReturnRows(sqlmock.NewRows([]string{"address_id", "user_id", "name", "phone", "description", "created_at", "updated_at"}))

	if _, err := repo.Get(5, 99); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresAdd(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("INSERT INTO addresses").
		WithArgs(5, "Home", "555-0101", "12 Hill Rd", "now", "now").
		WillReturnRows(sqlmock.NewRows([]string{"address_id"}).AddRow(7))

	created, err := repo.Add(Address{UserID: 5, Name: "Home", Phone: "555-0101", Description: "12 Hill Rd", CreatedAt: "now", UpdatedAt: "now"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created.AddressID != 7 {
		t.Fatalf("expected id 7, got %d", created.AddressID)
	}
}

func TestPostgresDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("DELETE FROM addresses").WithArgs(5, 7).WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.Delete(5, 7); err != nil {
		t.Fatalf("delete: %v", err)
	}

	mock.ExpectExec("DELETE FROM addresses").WithArgs(5, 8).WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.Delete(5, 8); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing row, got %v", err)
	}
}
