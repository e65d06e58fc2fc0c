package category

import (
	"database/sql"
)

// Repository provides access to category rows.
type Repository interface {
	List(limit int) ([]CategoryItem, error)
	ListSubcategories(categoryID int) ([]Subcategory, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns category rows ordered by `ord` then id. A missing table yields
// an empty slice so the storefront can render without categories.
func (r *PostgresRepository) List(limit int) ([]CategoryItem, error) {
	rows, err := r.db.Query(`SELECT category_id, name, slug, image FROM categories ORDER BY COALESCE(ord, 0) DESC, category_id LIMIT $1`, limit)
	if err != nil {
		return []CategoryItem{}, nil
	}
	defer rows.Close()

	out := make([]CategoryItem, 0)
	for rows.Next() {
		var (
			item  CategoryItem
			image sql.NullString
		)
		if err := rows.Scan(&item.CategoryID, &item.Name, &item.Slug, &image); err != nil {
			continue
		}
		if image.Valid {
			item.Image = &image.String
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *PostgresRepository) ListSubcategories(categoryID int) ([]Subcategory, error) {
	rows, err := r.db.Query(`SELECT subcategory_id, category_id, name, slug FROM subcategories WHERE category_id = $1 ORDER BY subcategory_id`, categoryID)
	if err != nil {
		return []Subcategory{}, nil
	}
	defer rows.Close()

	out := make([]Subcategory, 0)
	for rows.Next() {
		var s Subcategory
		if err := rows.Scan(&s.SubcategoryID, &s.CategoryID, &s.Name, &s.Slug); err != nil {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
