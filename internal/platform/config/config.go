package config

import (
	"fmt"
	"os"
	"time"
)

// Database holds connection parameters for the Postgres index store.
type Database struct {
	Name     string
	User     string
	Password string
	Host     string
	Port     string
}

// DSN renders the lib/pq connection string.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"dbname=%s user=%s password=%s host=%s port=%s sslmode=disable",
		d.Name, d.User, d.Password, d.Host, d.Port,
	)
}

// Config captures everything the binaries read from the environment so main
// stays lean.
type Config struct {
	Addr         string
	DB           Database
	RedisURL     string
	FetchTimeout time.Duration
}

// FromEnv builds a Config from environment variables with documented defaults.
func FromEnv() Config {
	cfg := Config{
		Addr: envOr("SOVINDEX_ADDR", ":8080"),
		DB: Database{
			Name:     envOr("DB_NAME", "sovai"),
			User:     envOr("DB_USER", "sovai"),
			Password: envOr("DB_PASSWORD", "sovai"),
			Host:     envOr("DB_HOST", "localhost"),
			Port:     envOr("DB_PORT", "5432"),
		},
		RedisURL:     os.Getenv("REDIS_URL"),
		FetchTimeout: 20 * time.Second,
	}
	if raw := os.Getenv("FETCH_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cfg.FetchTimeout = d
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
