package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/shopzeo/storefront-api/internal/address"
	"github.com/shopzeo/storefront-api/internal/banner"
	"github.com/shopzeo/storefront-api/internal/brand"
	"github.com/shopzeo/storefront-api/internal/cart"
	"github.com/shopzeo/storefront-api/internal/category"
	"github.com/shopzeo/storefront-api/internal/config"
	"github.com/shopzeo/storefront-api/internal/order"
	"github.com/shopzeo/storefront-api/internal/otp"
	"github.com/shopzeo/storefront-api/internal/product"
	"github.com/shopzeo/storefront-api/internal/store"
	"github.com/shopzeo/storefront-api/internal/user"
	"github.com/shopzeo/storefront-api/internal/vendor"
	"github.com/shopzeo/storefront-api/internal/wishlist"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	if err := ensureSchema(db); err != nil {
		log.Fatalf("schema: %v", err)
	}
	seedWhenEmpty(db)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	userService := user.NewService(user.NewPostgresRepository(db), user.NewPostgresResetRepository(db))
	userHandler := user.NewHandler(userService, cfg.JWTSecret)

	vendorService := vendor.NewService(vendor.NewPostgresRepository(db), vendor.NewPostgresResetRepository(db))
	vendorHandler := vendor.NewHandler(vendorService, cfg.JWTSecret)

	otpHandler := otp.NewHandler(otp.NewService(otp.NewPostgresRepository(db), userService))

	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)

	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(db)))
	brandHandler := brand.NewHandler(brand.NewService(brand.NewPostgresRepository(db)))
	bannerHandler := banner.NewHandler(banner.NewService(banner.NewPostgresRepository(db)))
	storeHandler := store.NewHandler(store.NewService(store.NewPostgresRepository(db)))

	addressService := address.NewService(address.NewPostgresRepository(db))
	addressHandler := address.NewHandler(addressService)

	cartService := cart.NewService(cart.NewPostgresRepository(db))
	cartHandler := cart.NewHandler(cartService)

	wishlistHandler := wishlist.NewHandler(wishlist.NewService(wishlist.NewPostgresRepository(db)))

	orderService := order.NewService(order.NewPostgresRepository(db), productService)
	orderHandler := order.NewHandler(orderService, addressService, cartService)

	// public routes go in before the JWT middleware
	userHandler.RegisterPublicRoutes(app)
	vendorHandler.RegisterPublicRoutes(app)
	otpHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	brandHandler.RegisterPublicRoutes(app)
	bannerHandler.RegisterPublicRoutes(app)
	storeHandler.RegisterPublicRoutes(app)

	app.Get("/api/v1/config", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"mapsApiKey": cfg.MapsAPIKey})
	})

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	vendorHandler.RegisterProtectedRoutes(app)
	addressHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	wishlistHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	log.Fatal(app.Listen(cfg.Addr))
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		log.Println("DATABASE_URL is not set")
		os.Exit(1)
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("ping db: %v", err)
	}
	return db
}
