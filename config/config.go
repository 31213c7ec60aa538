// Package config loads runtime settings from the process environment,
// with an optional .env overlay for development.
package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the blog server.
type Config struct {
	Addr          string
	DatabasePath  string
	SessionPath   string
	SessionSecret string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first if present; real environment
// variables win. SESSION_SECRET is required.
func Load() (*Config, error) {
	// Best effort; absence of a .env file is normal outside development.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:          getenv("ADDR", ":8080"),
		DatabasePath:  getenv("DATABASE_PATH", "data/posts.db"),
		SessionPath:   getenv("SESSION_PATH", "data/sessions"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
	}

	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET must be set")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
