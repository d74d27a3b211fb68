package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv("INVESTIDOR10_COOKIE", "")
	t.Setenv("CARTEIRA_ID", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8089" {
		t.Errorf("Expected Port to be 8089, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Investidor10.Timeout != 10*time.Second {
		t.Errorf("Expected timeout to be 10s, got %v", cfg.Investidor10.Timeout)
	}

	if cfg.Workers != 1 {
		t.Errorf("Expected Workers to be 1, got %d", cfg.Workers)
	}

	if cfg.HasCredentials() {
		t.Error("Expected no credentials without cookie and wallet id")
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("INVESTIDOR10_COOKIE", "session=abc")
	t.Setenv("CARTEIRA_ID", "12345")
	t.Setenv("INVESTIDOR10_BASE_URL", "http://localhost:9999/")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("WORKERS", "4")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if !cfg.HasCredentials() {
		t.Error("Expected credentials to be configured")
	}

	if cfg.Investidor10.BaseURL != "http://localhost:9999" {
		t.Errorf("Expected trailing slash to be trimmed, got %s", cfg.Investidor10.BaseURL)
	}

	if cfg.Investidor10.Timeout != 3*time.Second {
		t.Errorf("Expected timeout to be 3s, got %v", cfg.Investidor10.Timeout)
	}

	if cfg.Workers != 4 {
		t.Errorf("Expected Workers to be 4, got %d", cfg.Workers)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be debug, got %s", cfg.LogLevel)
	}
}

func TestValidateInvalidEnv(t *testing.T) {
	t.Setenv("ENV", "invalid")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when ENV is invalid, got nil")
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Setenv("WORKERS", "0")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when WORKERS is 0, got nil")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("CARTEIRA_ID=777\nFIIS_FILE=meus-fiis.txt\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	// godotenv never overrides variables that are already set
	t.Setenv("CARTEIRA_ID", "")
	os.Unsetenv("CARTEIRA_ID")
	t.Setenv("FIIS_FILE", "")
	os.Unsetenv("FIIS_FILE")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if cfg.Investidor10.WalletID != "777" {
		t.Errorf("Expected WalletID to be 777, got %s", cfg.Investidor10.WalletID)
	}

	if cfg.FIIsFile != "meus-fiis.txt" {
		t.Errorf("Expected FIIsFile to be meus-fiis.txt, got %s", cfg.FIIsFile)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Expected error for missing env file, got nil")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.validate(); err != nil {
		t.Errorf("Default() should validate, got %v", err)
	}
	if cfg.HasCredentials() {
		t.Error("Default() should not carry credentials")
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "2h")

	duration := getEnvAsDuration("TEST_DURATION", "1h")
	expected := 2 * time.Hour

	if duration != expected {
		t.Errorf("Expected duration to be %v, got %v", expected, duration)
	}

	t.Setenv("TEST_DURATION", "soon")
	if got := getEnvAsDuration("TEST_DURATION", "1h"); got != time.Hour {
		t.Errorf("Expected fallback duration 1h, got %v", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT", "100")

	value := getEnvAsInt("TEST_INT", 50)
	if value != 100 {
		t.Errorf("Expected value to be 100, got %d", value)
	}

	t.Setenv("TEST_INT", "cem")
	if got := getEnvAsInt("TEST_INT", 50); got != 50 {
		t.Errorf("Expected fallback value 50, got %d", got)
	}
}
