// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"fjacquet/receipt-csv/internal/logging"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "RECEIPT"

// LogConfig controls the logrus adapter.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig controls CSV export.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// ReconcileConfig controls total reconciliation.
type ReconcileConfig struct {
	Strict    bool   `mapstructure:"strict" yaml:"strict"`
	Tolerance string `mapstructure:"tolerance" yaml:"tolerance"`
}

// OCRConfig controls the tesseract command used for image receipts.
type OCRConfig struct {
	TesseractPath  string `mapstructure:"tesseract_path" yaml:"tesseract_path"`
	Languages      string `mapstructure:"languages" yaml:"languages"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// LedgerConfig controls ledger transaction mapping.
type LedgerConfig struct {
	AccountID     string `mapstructure:"account_id" yaml:"account_id"`
	CategoryID    string `mapstructure:"category_id" yaml:"category_id"`
	CurrencyScale int64  `mapstructure:"currency_scale" yaml:"currency_scale"`
}

// BatchConfig controls concurrent processing.
type BatchConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// Config represents the complete application configuration
type Config struct {
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	CSV       CSVConfig       `mapstructure:"csv" yaml:"csv"`
	Reconcile ReconcileConfig `mapstructure:"reconcile" yaml:"reconcile"`
	OCR       OCRConfig       `mapstructure:"ocr" yaml:"ocr"`
	Ledger    LedgerConfig    `mapstructure:"ledger" yaml:"ledger"`
	Batch     BatchConfig     `mapstructure:"batch" yaml:"batch"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.receipt-csv")
	v.AddConfigPath(".receipt-csv")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// LOG_LEVEL is honoured without the prefix, as documented for the CLI.
	if err := v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind log level environment variable: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults always decode.
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("reconcile.strict", false)
	v.SetDefault("reconcile.tolerance", "0.01")

	v.SetDefault("ocr.tesseract_path", "tesseract")
	v.SetDefault("ocr.languages", "spa+eng")
	v.SetDefault("ocr.timeout_seconds", 60)

	v.SetDefault("ledger.account_id", "")
	v.SetDefault("ledger.category_id", "")
	v.SetDefault("ledger.currency_scale", 1000)

	v.SetDefault("batch.workers", 4)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	tolerance, err := decimal.NewFromString(config.Reconcile.Tolerance)
	if err != nil {
		return fmt.Errorf("reconcile.tolerance is not a decimal: %s", config.Reconcile.Tolerance)
	}
	if tolerance.IsNegative() {
		return fmt.Errorf("reconcile.tolerance must not be negative, got: %s", config.Reconcile.Tolerance)
	}

	if config.OCR.TimeoutSeconds < 1 || config.OCR.TimeoutSeconds > 600 {
		return fmt.Errorf("ocr.timeout_seconds must be between 1 and 600, got: %d", config.OCR.TimeoutSeconds)
	}

	if config.Ledger.CurrencyScale <= 0 {
		return fmt.Errorf("ledger.currency_scale must be positive, got: %d", config.Ledger.CurrencyScale)
	}

	if config.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1, got: %d", config.Batch.Workers)
	}

	return nil
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	for _, r := range c.CSV.Delimiter {
		return r
	}
	return ','
}

// Tolerance returns the reconciliation tolerance. Invalid values fall back to 0.01.
func (c *Config) Tolerance() decimal.Decimal {
	t, err := decimal.NewFromString(c.Reconcile.Tolerance)
	if err != nil || t.IsNegative() {
		return decimal.RequireFromString("0.01")
	}
	return t
}

// OCRTimeout returns the OCR timeout as a duration.
func (c *Config) OCRTimeout() time.Duration {
	return time.Duration(c.OCR.TimeoutSeconds) * time.Second
}

// ConfigureLoggingFromConfig builds a logger from the Config struct
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
