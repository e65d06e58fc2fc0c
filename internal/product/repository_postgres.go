package product

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	selectProductColumns = `
		SELECT product_id, store_id, brand_id, category_id, subcategory_id, name, slug,
			description, selling_price, mrp, image, rating, total_reviews, stock, featured,
			created_at, updated_at
		FROM products
	`
	selectSummariesQuery = `
		SELECT product_id, name, slug, selling_price, mrp, image, rating, total_reviews
		FROM products
		WHERE product_id = ANY($1::int[])
		ORDER BY array_position($1::int[], product_id)
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(f Filter) (Page, error) {
	where := make([]string, 0, 6)
	args := make([]any, 0, 6)
	add := func(clause string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if f.CategoryID != nil {
		add("category_id = $%d", *f.CategoryID)
	}
	if f.BrandID != nil {
		add("brand_id = $%d", *f.BrandID)
	}
	if f.StoreID != nil {
		add("store_id = $%d", *f.StoreID)
	}
	if f.MinPrice != nil {
		add("selling_price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("selling_price <= $%d", *f.MaxPrice)
	}
	if f.Query != "" {
		args = append(args, f.Query)
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%')", n, n))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM products`+clause, args...).Scan(&total); err != nil {
		return Page{}, err
	}

	args = append(args, limit, (page-1)*limit)
	query := selectProductColumns + clause +
		fmt.Sprintf(" ORDER BY product_id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return Page{}, err
	}
	defer rows.Close()

	items := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return Page{}, err
		}
		items = append(items, p)
	}

	return Page{
		Items:      items,
		Page:       page,
		TotalPages: (total + limit - 1) / limit,
		TotalItems: total,
	}, nil
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(selectProductColumns+` WHERE product_id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) GetBySlug(slug string) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(selectProductColumns+` WHERE slug = $1`, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) ListSummariesByIDs(ids []int) ([]Summary, error) {
	if len(ids) == 0 {
		return []Summary{}, nil
	}
	rows, err := r.db.Query(selectSummariesQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Summary, 0, len(ids))
	for rows.Next() {
		var s Summary
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

func (r *PostgresRepository) ListFeatured(limit int) ([]Product, error) {
	return r.listOrdered(` WHERE featured ORDER BY product_id LIMIT $1`, limit)
}

func (r *PostgresRepository) ListLatest(limit int) ([]Product, error) {
	return r.listOrdered(` ORDER BY created_at DESC, product_id DESC LIMIT $1`, limit)
}

func (r *PostgresRepository) ListTopRated(limit int) ([]Product, error) {
	return r.listOrdered(` ORDER BY rating DESC, total_reviews DESC LIMIT $1`, limit)
}

func (r *PostgresRepository) listOrdered(tail string, limit int) ([]Product, error) {
	rows, err := r.db.Query(selectProductColumns+tail, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var (
		brandID   sql.NullInt64
		catID     sql.NullInt64
		subcatID  sql.NullInt64
		image     sql.NullString
		createdAt sql.NullString
		updatedAt sql.NullString
	)
	if err := scanner.Scan(
		&p.ID, &p.StoreID, &brandID, &catID, &subcatID, &p.Name, &p.Slug,
		&p.Description, &p.SellingPrice, &p.MRP, &image, &p.Rating, &p.TotalReviews,
		&p.Stock, &p.Featured, &createdAt, &updatedAt,
	); err != nil {
		return Product{}, err
	}
	if brandID.Valid {
		v := int(brandID.Int64)
		p.BrandID = &v
	}
	if catID.Valid {
		v := int(catID.Int64)
		p.CategoryID = &v
	}
	if subcatID.Valid {
		v := int(subcatID.Int64)
		p.SubcategoryID = &v
	}
	if image.Valid {
		p.Image = &image.String
	}
	if createdAt.Valid {
		p.CreatedAt = createdAt.String
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.String
	}
	return p, nil
}
