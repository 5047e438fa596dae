package config

import (
	"flag"
	"os"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// resetFlagSet создаёт новый FlagSet перед каждым вызовом NewConfig,
// чтобы избежать повторной регистрации одних и тех же флагов между тестами.
func resetFlagSet(t *testing.T) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	// подавляем вывод парсера флагов в тестах
	flag.CommandLine.SetOutput(os.Stderr)
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATABASE_URI", "AUTH_SECRET", "PAYLOAD_SECRET", "TOKEN_TTL", "BCRYPT_COST",
		"DB_TIMEOUT", "LOG_JSON", "BASE_URL", "ENABLE_HTTPS", "TOKEN_FILE",
	} {
		t.Setenv(k, "")
	}
}

func TestNewConfig_DefaultsWhenEnvEmpty(t *testing.T) {
	clearEnv(t)

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.AuthSecret != DevAuthSecret {
		t.Fatalf("AuthSecret default expected %q, got %q", DevAuthSecret, cfg.AuthSecret)
	}
	if cfg.PayloadSecret != DevPayloadSecret {
		t.Fatalf("PayloadSecret default expected %q, got %q", DevPayloadSecret, cfg.PayloadSecret)
	}
	if !cfg.UsesDevSecrets() {
		t.Fatalf("UsesDevSecrets must be true with defaults")
	}
	if cfg.DatabaseDSN != "file:valtify.db" {
		t.Fatalf("DatabaseDSN default expected sqlite file, got %q", cfg.DatabaseDSN)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("TokenTTL default expected 24h, got %s", cfg.TokenTTL)
	}
	if cfg.BcryptCost != bcrypt.DefaultCost {
		t.Fatalf("BcryptCost default expected %d, got %d", bcrypt.DefaultCost, cfg.BcryptCost)
	}
	if cfg.DBTimeout != 5*time.Second {
		t.Fatalf("DBTimeout default expected 5s, got %s", cfg.DBTimeout)
	}
	if cfg.BaseURL != "localhost:8081" {
		t.Fatalf("BaseURL default expected 'localhost:8081', got %q", cfg.BaseURL)
	}
	if cfg.ServerURL != "http://localhost:8081" {
		t.Fatalf("ServerURL default expected 'http://localhost:8081', got %q", cfg.ServerURL)
	}
	if cfg.TokenFile == "" {
		t.Fatalf("client defaults must be non-empty: TokenFile=%q", cfg.TokenFile)
	}
}

func TestNewConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BASE_URL", "example.com:443")
	t.Setenv("ENABLE_HTTPS", "true")
	t.Setenv("AUTH_SECRET", "top")
	t.Setenv("PAYLOAD_SECRET", "payload-top-secret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("DB_TIMEOUT", "750ms")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "example.com:443" {
		t.Fatalf("BaseURL expected 'example.com:443', got %q", cfg.BaseURL)
	}
	if cfg.ServerURL != "https://example.com:443" {
		t.Fatalf("ServerURL expected 'https://example.com:443', got %q", cfg.ServerURL)
	}
	if cfg.AuthSecret != "top" || cfg.PayloadSecret != "payload-top-secret" {
		t.Fatalf("secrets expected from env, got %q / %q", cfg.AuthSecret, cfg.PayloadSecret)
	}
	if cfg.UsesDevSecrets() {
		t.Fatalf("UsesDevSecrets must be false with explicit secrets")
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("TokenTTL expected 2h, got %s", cfg.TokenTTL)
	}
	if cfg.BcryptCost != 4 {
		t.Fatalf("BcryptCost expected 4, got %d", cfg.BcryptCost)
	}
	if cfg.DBTimeout != 750*time.Millisecond {
		t.Fatalf("DBTimeout expected 750ms, got %s", cfg.DBTimeout)
	}
}

func TestNewConfig_ZeroTTLDisablesExpiry(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_TTL", "0s")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.TokenTTL != 0 {
		t.Fatalf("explicit zero TTL must be kept, got %s", cfg.TokenTTL)
	}
}

func TestNewConfig_BcryptCostOutOfRange(t *testing.T) {
	clearEnv(t)
	t.Setenv("BCRYPT_COST", "99")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BcryptCost != bcrypt.DefaultCost {
		t.Fatalf("out-of-range cost must fallback to default, got %d", cfg.BcryptCost)
	}
}

func TestNewConfig_InvalidBaseURLFallback(t *testing.T) {
	clearEnv(t)
	// Невалидный BASE_URL (со схемой) должен откатиться на localhost:8081
	t.Setenv("BASE_URL", "http://bad:8080")
	t.Setenv("ENABLE_HTTPS", "false")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "localhost:8081" {
		t.Fatalf("invalid BASE_URL must fallback to 'localhost:8081', got %q", cfg.BaseURL)
	}
	if !strings.HasPrefix(cfg.ServerURL, "http://localhost:8081") {
		t.Fatalf("ServerURL must reflect fallback base, got %q", cfg.ServerURL)
	}
}
