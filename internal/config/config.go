package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	// OutputRoot is the directory invoices are written under. PDFs land in
	// {OutputRoot}/invoices.
	OutputRoot string

	// LogoPath points at an optional logo image placed in the invoice header.
	// Skipped when empty or missing on disk.
	LogoPath string

	// StrictCoercion rejects a generation run when any spreadsheet cell fails
	// numeric coercion instead of carrying the row with a zeroed value.
	StrictCoercion bool

	DBType     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:        getenv("APP_SERVICE", "callbill"),
		AppVersion:     getenv("APP_VERSION", "0.1.0"),
		Environment:    getenv("ENVIRONMENT", "development"),
		OutputRoot:     getenv("OUTPUT_ROOT", "media"),
		LogoPath:       getenv("INVOICE_LOGO_PATH", ""),
		StrictCoercion: getenvBool("STRICT_COERCION", false),
		DBType:         getenv("DATABASE_TYPE", "sqlite"),
		DBHost:         getenv("DATABASE_HOST", "localhost"),
		DBPort:         getenv("DATABASE_PORT", "5432"),
		DBName:         getenv("DATABASE_NAME", "callbill"),
		DBUser:         getenv("DATABASE_USER", "callbill"),
		DBPassword:     getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:      getenv("DATABASE_SSLMODE", "disable"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
