package testutil

import (
	"fmt"
	"os"
)

// DatabaseConfig points tests at a database server.
type DatabaseConfig struct {
	URL string
}

// GetDatabaseConfig reads database configuration from environment
// variables. If DATABASE_URL is set, it is used directly; otherwise the
// discrete DATABASE_* variables are assembled into a URL. An empty config
// signals to use testcontainers.
func GetDatabaseConfig() DatabaseConfig {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return DatabaseConfig{URL: dsn}
	}

	host := os.Getenv("DATABASE_HOST")
	if host == "" {
		return DatabaseConfig{}
	}

	user := getEnv("DATABASE_USER", "postgres")
	password := os.Getenv("DATABASE_PASSWORD")
	port := getEnv("DATABASE_PORT", "5432")
	name := getEnv("DATABASE_NAME", "postgres")
	sslmode := getEnv("DATABASE_SSLMODE", "prefer")

	if password != "" {
		return DatabaseConfig{URL: fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			user, password, host, port, name, sslmode)}
	}
	return DatabaseConfig{URL: fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=%s",
		user, host, port, name, sslmode)}
}

// getEnv gets an environment variable with a fallback default value.
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
