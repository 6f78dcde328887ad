package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"Frostline/internal/logging"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string
	TLSCert         string
	TLSKey          string
	DatabaseURL     string
	TokenKey        string
	StaticDir       string
	LogLevel        slog.Level
	RateLimit       float64
	RateBurst       int
	ShutdownTimeout time.Duration
}

// TLS reports whether both certificate and key are configured.
func (c Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// Accounts reports whether user accounts and saved projects are available.
func (c Config) Accounts() bool {
	return c.DatabaseURL != ""
}

// Load reads the given .env files (".env" when none) and then the process
// environment. Missing files are fine.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	c := Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		TLSCert:         os.Getenv("TLS_CERT"),
		TLSKey:          os.Getenv("TLS_KEY"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		TokenKey:        os.Getenv("TOKEN_KEY"),
		StaticDir:       getenv("STATIC_DIR", "./static/main"),
		RateLimit:       5,
		RateBurst:       10,
		ShutdownTimeout: 5 * time.Second,
	}

	var err error
	if c.LogLevel, err = logging.ParseLevel(os.Getenv("LOG_LEVEL")); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		if c.RateLimit, err = strconv.ParseFloat(v, 64); err != nil || c.RateLimit <= 0 {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT %q", v)
		}
	}
	if v := os.Getenv("RATE_BURST"); v != "" {
		if c.RateBurst, err = strconv.Atoi(v); err != nil || c.RateBurst <= 0 {
			return Config{}, fmt.Errorf("invalid RATE_BURST %q", v)
		}
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		if c.ShutdownTimeout, err = time.ParseDuration(v); err != nil || c.ShutdownTimeout <= 0 {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q", v)
		}
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return Config{}, errors.New("TLS_CERT and TLS_KEY must be set together")
	}
	if c.Accounts() && c.TokenKey == "" {
		return Config{}, errors.New("TOKEN_KEY environment variable is not set")
	}
	return c, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
