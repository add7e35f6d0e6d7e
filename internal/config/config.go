// Package config loads application configuration from environment
// variables, with a best-effort .env load for local development.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Each field
// corresponds to an environment variable; defaults match a local
// MySQL development setup.
type Config struct {
	DBHost string // DB_HOST
	DBPort string // DB_PORT
	DBUser string // DB_USER
	DBPass string // DB_PASSWORD (empty allowed)
	DBName string // DB_NAME

	PasswordScheme string // PASSWORD_SCHEME: sha256 (legacy default) or bcrypt
	BcryptCost     int    // BCRYPT_COST, used only under the bcrypt scheme

	SeedAdmin     bool   // SEED_ADMIN boolean-like flag
	AdminUser     string // ADMIN_USER, required when seeding
	AdminPassword string // ADMIN_PASSWORD, required when seeding
	AdminEmail    string // ADMIN_EMAIL, placeholder default
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first; real environment variables
// always win.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		DBHost: getenv("DB_HOST", "localhost"),
		DBPort: getenv("DB_PORT", "3306"),
		DBUser: getenv("DB_USER", "root"),
		DBPass: os.Getenv("DB_PASSWORD"),
		DBName: getenv("DB_NAME", "tattlestoolie_db"),

		PasswordScheme: getenv("PASSWORD_SCHEME", "sha256"),
		BcryptCost:     atoi(getenv("BCRYPT_COST", "10")),

		SeedAdmin:     parseBool(os.Getenv("SEED_ADMIN")),
		AdminUser:     os.Getenv("ADMIN_USER"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminEmail:    getenv("ADMIN_EMAIL", "admin@example.com"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

// parseBool accepts the boolean-like spellings used for SEED_ADMIN.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
