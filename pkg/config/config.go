package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MigrationsPath string

	// Hosted Postgres convenience:
	// - DATABASE_URL: runtime connection (often PgBouncer/pooler)
	// - DIRECT_URL: direct connection for migrations
	DatabaseURL string
	DirectURL   string

	DB DBConfig

	Admin AdminConfig

	// AllowedOrigins is a comma-separated allowlist of origins allowed to call
	// the API from the public site and the admin SPA. Example:
	//   https://admin.wanderlusttravel.example,http://localhost:5173
	AllowedOrigins []string
}

type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

type AdminConfig struct {
	// JWTSecret signs admin session tokens (HS256). Required outside dev.
	JWTSecret string

	// TokenTTL bounds the lifetime of issued admin tokens.
	TokenTTL time.Duration

	// Email/Password form the single back-office login. The marketing site
	// only ever has one operator account; a multi-user admin would replace
	// this with a users table.
	Email    string
	Password string
}

func Load() Config {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	_ = godotenv.Load()

	// Cloud Run sets PORT. Prefer it when HTTP_ADDR isn't explicitly set.
	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8081"
		}
	}

	return Config{
		AppEnv:         env("APP_ENV", "dev"),
		HTTPAddr:       httpAddr,
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DirectURL:      os.Getenv("DIRECT_URL"),
		DB: DBConfig{
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			Name:     env("DB_NAME", "travelapi"),
			User:     env("DB_USER", "travelapi"),
			Password: env("DB_PASSWORD", "travelapi"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		Admin: AdminConfig{
			JWTSecret: env("ADMIN_JWT_SECRET", "dev-only-secret"),
			TokenTTL:  envHours("ADMIN_TOKEN_TTL_HOURS", 12),
			Email:     env("ADMIN_EMAIL", "admin@localhost"),
			Password:  os.Getenv("ADMIN_PASSWORD"),
		},

		AllowedOrigins: envList("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:4173"),
	}
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envHours(key string, fallback int) time.Duration {
	v := os.Getenv(key)
	if v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Hour
		}
	}
	return time.Duration(fallback) * time.Hour
}

func envList(key, fallbackCSV string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallbackCSV
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
