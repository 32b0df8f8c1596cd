package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/Govind-619/MarketSphere/checkout"
	"github.com/joho/godotenv"
)

// Defaults applied when the environment leaves a setting empty.
const (
	DefaultPort              = "8080"
	DefaultLookupConcurrency = 8
	DefaultSessionCacheSize  = 1024
	DefaultReferencePrefix   = "MS"
	DefaultQRTemplate        = "https://img.vietqr.io/image/{bank}-{account}-compact2.png?amount={amount}&addInfo={memo}&accountName={name}"
)

// Config holds all configuration for the application
type Config struct {
	Port string
	Env  string

	APIBaseURL string
	APITimeout time.Duration

	JWTSecret        string
	SessionSecret    string
	SessionCacheSize int

	BatchWindow       time.Duration
	LookupConcurrency int
	ReferencePrefix   string

	AdminBankCode      string
	AdminAccountNumber string
	AdminAccountName   string
	QRTemplate         string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

// LoadConfig loads configuration from a .env file, if present, and the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	config := &Config{
		Port:               getEnv("PORT", DefaultPort),
		Env:                getEnv("ENV", "development"),
		APIBaseURL:         os.Getenv("API_BASE_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		ReferencePrefix:    getEnv("PAYMENT_REFERENCE_PREFIX", DefaultReferencePrefix),
		AdminBankCode:      os.Getenv("ADMIN_BANK_CODE"),
		AdminAccountNumber: os.Getenv("ADMIN_ACCOUNT_NUMBER"),
		AdminAccountName:   os.Getenv("ADMIN_ACCOUNT_NAME"),
		QRTemplate:         getEnv("QR_TEMPLATE", DefaultQRTemplate),
		DBHost:             os.Getenv("DB_HOST"),
		DBPort:             os.Getenv("DB_PORT"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
	}

	var err error
	if config.APITimeout, err = getDuration("API_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if config.BatchWindow, err = getDuration("CHECKOUT_BATCH_WINDOW", checkout.DefaultBatchWindow); err != nil {
		return nil, err
	}
	if config.LookupConcurrency, err = getInt("CHECKOUT_LOOKUP_CONCURRENCY", DefaultLookupConcurrency); err != nil {
		return nil, err
	}
	if config.SessionCacheSize, err = getInt("SESSION_CACHE_SIZE", DefaultSessionCacheSize); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the settings the server cannot run without.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("API_BASE_URL is required")
	}
	if c.BatchWindow <= 0 {
		return fmt.Errorf("CHECKOUT_BATCH_WINDOW must be positive, got %s", c.BatchWindow)
	}
	if c.LookupConcurrency < 1 {
		return fmt.Errorf("CHECKOUT_LOOKUP_CONCURRENCY must be at least 1, got %d", c.LookupConcurrency)
	}
	if c.SessionCacheSize < 1 {
		return fmt.Errorf("SESSION_CACHE_SIZE must be at least 1, got %d", c.SessionCacheSize)
	}
	return nil
}

// HasDatabase reports whether the attempt journal database is configured.
func (c *Config) HasDatabase() bool {
	return c.DBHost != "" && c.DBName != ""
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	port := c.DBPort
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, port, c.DBUser, c.DBPassword, c.DBName)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %v", key, v, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %v", key, v, err)
	}
	return n, nil
}
