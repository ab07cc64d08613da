package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port              string
	DBDriver          string
	PostgresURL       string
	SQLitePath        string
	JWTSecret         string
	JWTTTL            time.Duration
	LogLevel          string
	CORSAllowedOrigin string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (Config, error) {
	_ = godotenv.Load()

	ttlMinutes, err := strconv.Atoi(getEnvWithDefault("JWT_TTL_MINUTES", "60"))
	if err != nil || ttlMinutes <= 0 {
		return Config{}, fmt.Errorf("JWT_TTL_MINUTES must be a positive integer")
	}

	cfg := Config{
		Port:              getEnvWithDefault("PORT", "8080"),
		DBDriver:          strings.ToLower(getEnvWithDefault("DB_DRIVER", DriverPostgres)),
		PostgresURL:       os.Getenv("POSTGRES_URL"),
		SQLitePath:        getEnvWithDefault("SQLITE_PATH", "travelplanner.db"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTTTL:            time.Duration(ttlMinutes) * time.Minute,
		LogLevel:          getEnvWithDefault("LOG_LEVEL", "info"),
		CORSAllowedOrigin: getEnvWithDefault("CORS_ALLOWED_ORIGIN", "*"),
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.PostgresURL == "" {
			return Config{}, fmt.Errorf("POSTGRES_URL is required when DB_DRIVER=%s", DriverPostgres)
		}
	case DriverSQLite:
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

// ValidateForServe checks the settings only the HTTP server needs.
func (c Config) ValidateForServe() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}
