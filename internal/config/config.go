package config

import (
	"fmt"
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// Config holds the server settings read from the environment (and .env).
type Config struct {
	Addr      string
	StaticDir string
	DBDriver  string
	DBDSN     string
	LogDev    bool
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	cfg := Config{
		Addr:      getenv("ADDR", ":8080"),
		StaticDir: getenv("STATIC_DIR", "web/static"),
		DBDriver:  getenv("DB_DRIVER", DriverSQLite),
		DBDSN:     getenv("DB_DSN", "./guesser.db"),
	}

	switch cfg.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if v := os.Getenv("LOG_DEV"); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_DEV %q: %w", v, err)
		}
		cfg.LogDev = dev
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
