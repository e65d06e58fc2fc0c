package store

import (
	"database/sql"
	"errors"
)

var ErrNotFound = errors.New("store not found")

// Repository provides access to store rows.
type Repository interface {
	List(limit int) ([]Store, error)
	GetByID(id int) (Store, error)
}

type PostgresRepository struct {
	db *sql.DB
}

const selectStoreColumns = `
	SELECT store_id, vendor_id, name, slug, logo, description, rating
	FROM stores
`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(limit int) ([]Store, error) {
	rows, err := r.db.Query(selectStoreColumns+` ORDER BY rating DESC, store_id LIMIT $1`, limit)
	if err != nil {
		return []Store{}, nil
	}
	defer rows.Close()

	out := make([]Store, 0)
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(id int) (Store, error) {
	s, err := scanStore(r.db.QueryRow(selectStoreColumns+` WHERE store_id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Store{}, ErrNotFound
		}
		return Store{}, err
	}
	return s, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStore(scanner rowScanner) (Store, error) {
	var (
		s    Store
		logo sql.NullString
		desc sql.NullString
	)
	if err := scanner.Scan(&s.StoreID, &s.VendorID, &s.Name, &s.Slug, &logo, &desc, &s.Rating); err != nil {
		return Store{}, err
	}
	if logo.Valid {
		s.Logo = &logo.String
	}
	if desc.Valid {
		s.Description = desc.String
	}
	return s, nil
}
