package config

import (
	"log"
	"os"
	"strings"
)

const (
	defaultDBDriver = "sqlite"
	defaultDBPath   = "./dev.db"
	defaultPort     = "8080"
	defaultEnv      = "dev"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AdminEmail    string
	AdminPassword string
	SessionSecret string
	DBDriver      string
	DBPath        string
	DatabaseURL   string
	Port          string
	PricingFile   string
	ChromeBin     string
	Env           string
	LogLevel      string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		DBDriver:      strings.ToLower(os.Getenv("DB_DRIVER")),
		DBPath:        os.Getenv("DB_PATH"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Port:          strings.TrimPrefix(os.Getenv("PORT"), ":"),
		PricingFile:   os.Getenv("PRICING_FILE"),
		ChromeBin:     os.Getenv("CHROME_BIN"),
		Env:           strings.ToLower(os.Getenv("APP_ENV")),
		LogLevel:      os.Getenv("LOG_LEVEL"),
	}

	if cfg.DBDriver == "" {
		cfg.DBDriver = defaultDBDriver
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}

	if cfg.AdminEmail == "" {
		log.Print("warning: ADMIN_EMAIL is not set")
	}
	if cfg.AdminPassword == "" {
		log.Print("warning: ADMIN_PASSWORD is not set")
	}
	if cfg.SessionSecret == "" {
		log.Print("warning: SESSION_SECRET is not set")
	}
	if cfg.DBDriver == "pgx" && cfg.DatabaseURL == "" {
		log.Print("warning: DB_DRIVER=pgx but DATABASE_URL is not set")
	}

	return cfg
}

// IsDev reports whether the process runs in the development environment.
func (c Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "development"
}

// DataSource returns the connection string for the configured driver.
func (c Config) DataSource() string {
	if c.DBDriver == "pgx" {
		return c.DatabaseURL
	}
	return c.DBPath
}

// Addr is the HTTP listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}
