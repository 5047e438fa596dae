package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	// DevAuthSecret и DevPayloadSecret используются, если секреты не заданы.
	// Годятся только для локальной разработки.
	DevAuthSecret    = "dev-secret-key"
	DevPayloadSecret = "dev-payload-secret-key"

	defaultBaseURL   = "localhost:8081"
	defaultDSN       = "file:valtify.db"
	defaultTokenTTL  = 24 * time.Hour
	defaultDBTimeout = 5 * time.Second
)

type Config struct {
	// Server-side settings
	DatabaseDSN   string        `env:"DATABASE_URI"`
	AuthSecret    string        `env:"AUTH_SECRET"`
	PayloadSecret string        `env:"PAYLOAD_SECRET"`
	TokenTTL      time.Duration `env:"TOKEN_TTL"`
	BcryptCost    int           `env:"BCRYPT_COST"`
	DBTimeout     time.Duration `env:"DB_TIMEOUT"`
	LogJSON       bool          `env:"LOG_JSON"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL string `env:"-"`
	TokenFile string `env:"TOKEN_FILE"`
	Version   bool   `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{TokenTTL: -1}
	_ = env.Parse(cfg)

	// значения из env служат значениями по умолчанию для флагов
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres://... или путь к файлу SQLite)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.PayloadSecret, "payload-secret", cfg.PayloadSecret, "мастер-секрет для шифрования содержимого записей")
	flag.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "время жизни токена сессии (0 — без истечения)")
	flag.IntVar(&cfg.BcryptCost, "bcrypt-cost", cfg.BcryptCost, "стоимость bcrypt для хеширования паролей")
	flag.DurationVar(&cfg.DBTimeout, "db-timeout", cfg.DBTimeout, "таймаут одного запроса к БД")
	flag.BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "писать логи в JSON (production logger)")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address of the Valtify server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to auth token file (client)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = defaultDSN
	}
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = DevAuthSecret
	}
	if cfg.PayloadSecret == "" {
		cfg.PayloadSecret = DevPayloadSecret
	}
	// -1 означает «не задано»; явный 0 отключает истечение токенов
	if cfg.TokenTTL < 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.DBTimeout <= 0 {
		cfg.DBTimeout = defaultDBTimeout
	}

	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = defaultBaseURL
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	if cfg.TokenFile == "" {
		home, _ := os.UserHomeDir()
		cfg.TokenFile = filepath.Join(home, ".valtify_token")
	}
}

// UsesDevSecrets сообщает, работает ли сервер на секретах по умолчанию.
func (cfg *Config) UsesDevSecrets() bool {
	return cfg.AuthSecret == DevAuthSecret || cfg.PayloadSecret == DevPayloadSecret
}
