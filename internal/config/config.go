package config

import "os"

// Config holds the server settings read from the environment.
type Config struct {
	Addr         string
	DatabaseURL  string
	JWTSecret    string
	AllowOrigins string
	MapsAPIKey   string
}

func Load() Config {
	return Config{
		Addr:         getenv("STOREFRONT_ADDR", ":8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		AllowOrigins: getenv("CORS_ALLOW_ORIGINS", "*"),
		MapsAPIKey:   os.Getenv("GOOGLE_MAPS_API_KEY"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
