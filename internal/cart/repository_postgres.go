package cart

import (
	"database/sql"
	"encoding/json"
	"strconv"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const getCartProductsQuery = `
	SELECT product_id, name, slug, selling_price, mrp, image, rating, total_reviews
	FROM products
	WHERE product_id = ANY($1::int[])
	ORDER BY array_position($1::int[], product_id)
`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(userID, productID, qty int, updatedAt string) error {
	return r.mutate(userID, updatedAt, func(m map[string]int) {
		key := strconv.Itoa(productID)
		m[key] += qty
		if m[key] <= 0 {
			delete(m, key)
		}
	})
}

func (r *PostgresRepository) Set(userID, productID, qty int, updatedAt string) error {
	return r.mutate(userID, updatedAt, func(m map[string]int) {
		key := strconv.Itoa(productID)
		if qty <= 0 {
			delete(m, key)
			return
		}
		m[key] = qty
	})
}

func (r *PostgresRepository) Clear(userID int, updatedAt string) error {
	result, err := r.db.Exec(`UPDATE users SET cart = '{}', updated_at = $1 WHERE user_id = $2`, updatedAt, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) mutate(userID int, updatedAt string, fn func(map[string]int)) error {
	m, err := r.loadMap(userID)
	if err != nil {
		return err
	}
	fn(m)

	updated, err := json.Marshal(m)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`UPDATE users SET cart = $1, updated_at = $2 WHERE user_id = $3`, string(updated), updatedAt, userID)
	return err
}

func (r *PostgresRepository) loadMap(userID int) (map[string]int, error) {
	var raw sql.NullString
	if err := r.db.QueryRow(`SELECT cart::text FROM users WHERE user_id = $1`, userID).Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	m := make(map[string]int)
	if raw.Valid && raw.String != "" {
		if err := json.Unmarshal([]byte(raw.String), &m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (r *PostgresRepository) Get(userID int) ([]CartItem, error) {
	m, err := r.loadMap(userID)
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return []CartItem{}, nil
	}

	ids := make([]int, 0, len(m))
	for k := range m {
		if pid, err := strconv.Atoi(k); err == nil {
			ids = append(ids, pid)
		}
	}

	rows, err := r.db.Query(getCartProductsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CartItem, 0, len(ids))
	for rows.Next() {
		var item CartItem
		var image sql.NullString
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Slug, &item.SellingPrice, &item.MRP, &image, &item.Rating, &item.TotalReviews); err != nil {
			return nil, err
		}
		if image.Valid {
			item.Image = &image.String
		}
		item.Quantity = m[strconv.Itoa(item.ProductID)]
		out = append(out, item)
	}
	return out, nil
}
