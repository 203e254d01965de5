package globals

import (
	"context"
	"os"

	"github.com/joho/godotenv"
)

// load .env before the config vars below are evaluated
var _ = godotenv.Load()

var (
	JwtSecret = []byte(getenv("JWT_SECRET", "your_secret_key"))

	// Exactly one seller account exists, defined by configuration.
	SellerEmail    = getenv("SELLER_EMAIL", "admin@example.com")
	SellerPassword = getenv("SELLER_PASSWORD", "greatstack123")
)

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const SellerKey ContextKey = "seller"

var Ctx = context.Background()

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
