package banner

import (
	"database/sql"
)

// Repository provides access to banner items.
type Repository interface {
	List(limit int) ([]BannerItem, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns banner rows ordered by `ord` then id. A missing table yields
// an empty slice so the home page can fall back to static imagery.
func (r *PostgresRepository) List(limit int) ([]BannerItem, error) {
	rows, err := r.db.Query(`SELECT banner_id, image, link, alt FROM banners ORDER BY COALESCE(ord, 0) DESC, banner_id LIMIT $1`, limit)
	if err != nil {
		return []BannerItem{}, nil
	}
	defer rows.Close()

	out := make([]BannerItem, 0)
	for rows.Next() {
		var (
			id    int
			image sql.NullString
			link  sql.NullString
			alt   sql.NullString
		)
		if err := rows.Scan(&id, &image, &link, &alt); err != nil {
			continue
		}
		item := BannerItem{BannerID: id}
		if image.Valid {
			item.Image = &image.String
		}
		if link.Valid {
			item.Link = &link.String
		}
		if alt.Valid {
			item.Alt = &alt.String
		}
		out = append(out, item)
	}
	return out, nil
}
