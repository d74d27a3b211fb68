package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: every environment variable is read here and nowhere else
type Config struct {
	Env string // development, staging, production

	// Investidor10 wallet and public pages
	Investidor10 Investidor10Config

	// Report
	Workers       int
	RulesFile     string
	TickersFile   string
	FIIsFile      string
	WatchSchedule string

	// API server
	Port string

	// Logging
	LogLevel  string
	LogFormat string
}

// Investidor10Config holds wallet credentials and HTTP settings
type Investidor10Config struct {
	BaseURL   string
	Cookie    string
	WalletID  string
	UserAgent string
	Timeout   time.Duration
}

// Load reads configuration from environment variables
// ⭐ SSOT: the only function that calls os.Getenv()
func Load() (*Config, error) {
	loadEnvFile()
	return fromEnv()
}

// LoadFile behaves like Load but reads the given dotenv file first.
func LoadFile(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", path, err)
		}
	} else {
		loadEnvFile()
	}
	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Env: getEnv("ENV", "development"),

		Investidor10: Investidor10Config{
			BaseURL:   strings.TrimRight(getEnv("INVESTIDOR10_BASE_URL", "https://investidor10.com.br"), "/"),
			Cookie:    getEnv("INVESTIDOR10_COOKIE", ""),
			WalletID:  getEnv("CARTEIRA_ID", ""),
			UserAgent: getEnv("USER_AGENT", "Mozilla/5.0 (X11; Linux x86_64)"),
			Timeout:   getEnvAsDuration("HTTP_TIMEOUT", "10s"),
		},

		Workers:       getEnvAsInt("WORKERS", 1),
		RulesFile:     getEnv("VALUATION_RULES", ""),
		TickersFile:   getEnv("TICKERS_FILE", "tickers.txt"),
		FIIsFile:      getEnv("FIIS_FILE", "fiis.txt"),
		WatchSchedule: getEnv("WATCH_SCHEDULE", "0 0 19 * * 1-5"),

		Port: getEnv("PORT", "8089"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration with every default applied and no credentials.
// Tests and the scrape-only mode start from here.
func Default() *Config {
	return &Config{
		Env: "development",
		Investidor10: Investidor10Config{
			BaseURL:   "https://investidor10.com.br",
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64)",
			Timeout:   10 * time.Second,
		},
		Workers:       1,
		TickersFile:   "tickers.txt",
		FIIsFile:      "fiis.txt",
		WatchSchedule: "0 0 19 * * 1-5",
		Port:          "8089",
		LogLevel:      "info",
		LogFormat:     "console",
	}
}

// HasCredentials reports whether the wallet API can be queried.
// Without it the report runs in scrape-only mode.
func (c *Config) HasCredentials() bool {
	return c.Investidor10.Cookie != "" && c.Investidor10.WalletID != ""
}

// validate checks if configuration values are usable
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Workers < 1 {
		return fmt.Errorf("WORKERS must be at least 1, got %d", c.Workers)
	}

	if c.Investidor10.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}

	if c.Investidor10.BaseURL == "" {
		return fmt.Errorf("INVESTIDOR10_BASE_URL must not be empty")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
