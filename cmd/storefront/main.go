package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopzeo/storefront-api/pkg/storefront"
)

// Composition root for the client SDK. Everything is wired explicitly so
// swapping a piece (base URL, storage dir) is a one-line change here.
func main() {
	_ = godotenv.Load()

	email := flag.String("email", "", "sign in before running")
	password := flag.String("password", "", "password for -email")
	query := flag.String("q", "", "search products instead of showing home sections")
	flag.Parse()

	dir := os.Getenv("STOREFRONT_STATE_DIR")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("resolve home dir: %v", err)
		}
		dir = filepath.Join(home, ".storefront")
	}
	storage, err := storefront.NewStorage(dir)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}

	auth := storefront.NewAuthStore(storage)
	client := storefront.NewClient(os.Getenv("STOREFRONT_API_BASE_URL"), auth)
	cart := storefront.NewCartStore(client, auth)
	storefront.NewWishlistStore(client, auth)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *email != "" {
		u, err := auth.SignIn(ctx, client, storefront.SignInParams{Email: *email, Password: *password})
		if err != nil {
			log.Fatalf("sign in: %v", err)
		}
		fmt.Printf("signed in as %s %s <%s>\n", u.FirstName, u.LastName, u.Email)
	}

	if *query != "" {
		page, err := storefront.ListProducts(ctx, client, storefront.ProductQuery{Query: *query})
		if err != nil {
			log.Fatalf("search: %v", err)
		}
		fmt.Printf("page %d of %d (%d products)\n", page.Page, page.TotalPages, page.TotalItems)
		for _, p := range page.Items {
			printProduct(p)
		}
	} else {
		sections, err := storefront.FetchSections(ctx, client)
		if err != nil {
			log.Fatalf("sections: %v", err)
		}
		fmt.Println("featured:")
		for _, p := range sections.Featured {
			printProduct(p)
		}
		fmt.Println("latest:")
		for _, p := range sections.Latest {
			printProduct(p)
		}
	}

	if auth.Authenticated() {
		if err := cart.Refresh(ctx); err != nil {
			log.Fatalf("cart: %v", err)
		}
		fmt.Printf("cart: %d lines, subtotal %.2f\n", len(cart.Items()), cart.Subtotal())
	}
}

func printProduct(p storefront.Product) {
	if p.Discount > 0 {
		fmt.Printf("  #%d %s  %.2f (%d%% off %.2f)\n", p.ID, p.Name, p.Price, p.Discount, p.OriginalPrice)
		return
	}
	fmt.Printf("  #%d %s  %.2f\n", p.ID, p.Name, p.Price)
}
