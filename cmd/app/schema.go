package main

import (
	"database/sql"
	"log"
)

// ensureSchema creates every table the repositories read from. Statements are
// idempotent so the server can run against a fresh or an existing database.
func ensureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			verified BOOLEAN NOT NULL DEFAULT FALSE,
			avatar TEXT,
			main_address_id INT,
			wishlist integer[] NOT NULL DEFAULT '{}',
			cart jsonb NOT NULL DEFAULT '{}',
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS password_resets (
			email TEXT PRIMARY KEY,
			code TEXT NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS vendors (
			vendor_id SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			business_name TEXT NOT NULL DEFAULT '',
			gst_number TEXT NOT NULL DEFAULT '',
			contact_name TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			verified BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS vendor_password_resets (
			email TEXT PRIMARY KEY,
			code TEXT NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS otp_codes (
			phone TEXT PRIMARY KEY,
			code TEXT NOT NULL,
			issued_at TIMESTAMPTZ NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS stores (
			store_id SERIAL PRIMARY KEY,
			vendor_id INT NOT NULL DEFAULT 0,
			name TEXT NOT NULL,
			slug TEXT NOT NULL DEFAULT '',
			logo TEXT,
			description TEXT NOT NULL DEFAULT '',
			rating numeric NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			category_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL DEFAULT '',
			image TEXT,
			ord INT
		)`,
		`CREATE TABLE IF NOT EXISTS subcategories (
			subcategory_id SERIAL PRIMARY KEY,
			category_id INT NOT NULL,
			name TEXT NOT NULL,
			slug TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS brands (
			brand_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL DEFAULT '',
			logo TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS banners (
			banner_id SERIAL PRIMARY KEY,
			image TEXT NOT NULL,
			link TEXT,
			alt TEXT,
			ord INT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id SERIAL PRIMARY KEY,
			store_id INT NOT NULL DEFAULT 0,
			brand_id INT,
			category_id INT,
			subcategory_id INT,
			name TEXT NOT NULL,
			slug TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			selling_price numeric NOT NULL DEFAULT 0,
			mrp numeric NOT NULL DEFAULT 0,
			image TEXT,
			rating numeric NOT NULL DEFAULT 0,
			total_reviews INT NOT NULL DEFAULT 0,
			stock INT NOT NULL DEFAULT 0,
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS addresses (
			address_id SERIAL PRIMARY KEY,
			user_id INT NOT NULL,
			name TEXT NOT NULL,
			phone TEXT NOT NULL,
			description TEXT NOT NULL,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			order_number TEXT UNIQUE NOT NULL,
			user_id INT NOT NULL,
			cart jsonb NOT NULL DEFAULT '{}',
			quantity INT NOT NULL DEFAULT 0,
			total_price numeric NOT NULL DEFAULT 0,
			shipping_price numeric NOT NULL DEFAULT 0,
			grand_price numeric NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'pending',
			shipping_name TEXT NOT NULL DEFAULT '',
			shipping_phone TEXT NOT NULL DEFAULT '',
			shipping_address TEXT NOT NULL DEFAULT '',
			payment_method TEXT NOT NULL DEFAULT '',
			created_at TEXT,
			updated_at TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// seedWhenEmpty fills the lookup tables a fresh storefront needs to render
// anything at all. Seed failures only log; the API still works without them.
func seedWhenEmpty(db *sql.DB) {
	var categoryCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&categoryCount); err == nil && categoryCount == 0 {
		seed := []struct{ name, slug, img string }{
			{"Electronics", "electronics", "/category/electronics.png"},
			{"Fashion", "fashion", "/category/fashion.png"},
			{"Home & Kitchen", "home-kitchen", "/category/home-kitchen.png"},
			{"Beauty", "beauty", "/category/beauty.png"},
			{"Sports", "sports", "/category/sports.png"},
			{"Groceries", "groceries", "/category/groceries.png"},
		}
		for i, s := range seed {
			if _, err := db.Exec(`INSERT INTO categories (name, slug, image, ord) VALUES ($1,$2,$3,$4)`, s.name, s.slug, s.img, len(seed)-i); err != nil {
				log.Printf("seed category %q: %v", s.name, err)
			}
		}
	}

	var bannerCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM banners`).Scan(&bannerCount); err == nil && bannerCount == 0 {
		seed := []struct{ img, link, alt string }{
			{"/banner/season-sale.jpg", "/products?category=2", "Season sale"},
			{"/banner/new-arrivals.jpg", "/products", "New arrivals"},
			{"/banner/free-shipping.jpg", "", "Free shipping over 500"},
		}
		for i, s := range seed {
			if _, err := db.Exec(`INSERT INTO banners (image, link, alt, ord) VALUES ($1,$2,$3,$4)`, s.img, s.link, s.alt, len(seed)-i); err != nil {
				log.Printf("seed banner %q: %v", s.img, err)
			}
		}
	}
}
