package config

import (
	"flag"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	DatabaseDSN  string `env:"DATABASE_URI"`
	AuthSecret   string `env:"AUTH_SECRET"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL string `env:"-"`
	Version   bool   `env:"-"` // show client version and exit (flag only)
}

// NewConfig loads .env, then the environment, then flags. Environment
// variables win; flags fill in whatever the environment left empty.
func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN (postgres:// URL or SQLite file path)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "secret for signing JWT")
	flag.StringVar(&cfg.GeminiAPIKey, "gemini-key", cfg.GeminiAPIKey, "Gemini API key (empty disables the AI assistant)")
	flag.StringVar(&cfg.GeminiModel, "gemini-model", cfg.GeminiModel, "Gemini model name")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL of the LoreKeeper server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	// Defaults
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.0-flash"
	}
	// validate BaseURL: must be "address:port" (no scheme, no path)
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	return cfg
}
