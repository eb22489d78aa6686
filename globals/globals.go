package globals

import (
	"context"
	"os"
)

var (
	JwtSecret = []byte(getenv("JWT_SECRET", "your_secret_key")) // Replace with a secure secret key
)

// Context keys
type ContextKey string

const RoleKey ContextKey = "role"
const UserIDKey ContextKey = "userId"

var Ctx = context.Background()

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
