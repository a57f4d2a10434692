package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"

	"fjacquet/receipt-csv/internal/logging"
)

var once sync.Once

// ConfigureLogging builds a logger from LOG_LEVEL and LOG_FORMAT.
func ConfigureLogging() logging.Logger {
	return logging.NewLogrusAdapter(GetEnv("LOG_LEVEL", "info"), GetEnv("LOG_FORMAT", "text"))
}

// LoadEnv loads environment variables from a .env file in the current or parent
// directory. It runs at most once per process.
func LoadEnv() {
	once.Do(func() {
		loadEnvFile(ConfigureLogging(), ".env", filepath.Join("..", ".env"))
	})
}

// loadEnvFile loads the first candidate that exists and reports which one was used.
func loadEnvFile(logger logging.Logger, candidates ...string) string {
	for _, envFile := range candidates {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			logger.WithError(err).Warn("Error loading .env file", logging.F(logging.FieldFile, envFile))
			return ""
		}
		logger.Debug("Loaded environment variables", logging.F(logging.FieldFile, envFile))
		return envFile
	}
	logger.Debug("No .env file found, using environment variables")
	return ""
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
