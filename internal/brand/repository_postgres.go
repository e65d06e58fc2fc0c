package brand

import (
	"database/sql"
)

// Repository provides access to brand rows.
type Repository interface {
	List(limit int) ([]BrandItem, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(limit int) ([]BrandItem, error) {
	rows, err := r.db.Query(`SELECT brand_id, name, slug, logo FROM brands ORDER BY name, brand_id LIMIT $1`, limit)
	if err != nil {
		return []BrandItem{}, nil
	}
	defer rows.Close()

	out := make([]BrandItem, 0)
	for rows.Next() {
		var (
			item BrandItem
			logo sql.NullString
		)
		if err := rows.Scan(&item.BrandID, &item.Name, &item.Slug, &logo); err != nil {
			continue
		}
		if logo.Valid {
			item.Logo = &logo.String
		}
		out = append(out, item)
	}
	return out, nil
}
