package wishlist

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/shopzeo/storefront-api/internal/product"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getWishlistProductsQuery = `
		SELECT product_id, name, slug, selling_price, mrp, image, rating, total_reviews
		FROM products
		WHERE product_id = ANY($1::int[])
		ORDER BY array_position($1::int[], product_id)
	`
	addWishlistQuery = `
		UPDATE users
		SET wishlist = array_append(coalesce(wishlist, ARRAY[]::integer[]), $2),
			updated_at = $3
		WHERE user_id = $1
			AND NOT ($2 = ANY(coalesce(wishlist, ARRAY[]::integer[])))
		RETURNING wishlist
	`
	removeWishlistQuery = `
		UPDATE users
		SET wishlist = array_remove(coalesce(wishlist, ARRAY[]::integer[]), $2),
			updated_at = $3
		WHERE user_id = $1
			AND ($2 = ANY(coalesce(wishlist, ARRAY[]::integer[])))
		RETURNING wishlist
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(userID, productID int, updatedAt string) ([]int, error) {
	return r.update(addWishlistQuery, userID, productID, updatedAt, ErrAlreadyListed)
}

func (r *PostgresRepository) Remove(userID, productID int, updatedAt string) ([]int, error) {
	return r.update(removeWishlistQuery, userID, productID, updatedAt, ErrNotListed)
}

// update runs one of the guarded wishlist updates. A zero-row result means
// either the user does not exist or the guard condition failed; a second
// lookup disambiguates.
func (r *PostgresRepository) update(query string, userID, productID int, updatedAt string, guardErr error) ([]int, error) {
	var arr pq.Int64Array
	err := r.db.QueryRow(query, userID, productID, updatedAt).Scan(pq.Array(&arr))
	if err != nil {
		if err == sql.ErrNoRows {
			var exists int
			if err2 := r.db.QueryRow(`SELECT 1 FROM users WHERE user_id = $1`, userID).Scan(&exists); err2 == sql.ErrNoRows {
				return nil, ErrNotFound
			}
			return nil, guardErr
		}
		return nil, err
	}

	res := make([]int, len(arr))
	for i, v := range arr {
		res[i] = int(v)
	}
	return res, nil
}

func (r *PostgresRepository) Get(userID int) ([]product.Summary, error) {
	var listText sql.NullString
	if err := r.db.QueryRow(`SELECT array_to_string(wishlist, ',') FROM users WHERE user_id = $1`, userID).Scan(&listText); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !listText.Valid || listText.String == "" {
		return []product.Summary{}, nil
	}

	parts := strings.Split(listText.String, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, v)
	}
	if len(ids) == 0 {
		return []product.Summary{}, nil
	}

	rows, err := r.db.Query(getWishlistProductsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]product.Summary, 0, len(ids))
	for rows.Next() {
		var s product.Summary
		var image sql.NullString
		if err := rows.Scan(&s.ProductID, &s.Name, &s.Slug, &s.SellingPrice, &s.MRP, &image, &s.Rating, &s.TotalReviews); err != nil {
			return nil, err
		}
		if image.Valid {
			s.Image = &image.String
		}
		out = append(out, s)
	}
	return out, nil
}
