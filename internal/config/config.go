package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	GinMode         string `env:"GIN_MODE" envDefault:"debug"`
	Addr            string `env:"APP_ADDR" envDefault:":8080"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	TZ              string `env:"TZ" envDefault:"UTC"`
	CORSAllowOrigin string `env:"CORS_ALLOW_ORIGIN" envDefault:"*"`
	DB              DB
}

type DB struct {
	Driver      string        `env:"DB_DRIVER" envDefault:"postgres"`
	Host        string        `env:"DB_HOST" envDefault:"localhost"`
	Port        string        `env:"DB_PORT" envDefault:"5432"`
	User        string        `env:"DB_USER" envDefault:"postgres"`
	Pass        string        `env:"DB_PASS"`
	Name        string        `env:"DB_NAME" envDefault:"postgres"`
	SSLMode     string        `env:"DB_SSLMODE"`
	SQLitePath  string        `env:"SQLITE_PATH" envDefault:"books.db"`
	MaxAttempts int           `env:"DB_MAX_ATTEMPTS" envDefault:"10"`
	RetryDelay  time.Duration `env:"DB_RETRY_DELAY" envDefault:"2s"`
}

// Load reads configuration from the environment. In debug mode a .env.dev
// file from the working directory or any parent is loaded first; variables
// already set win.
func Load() (*Config, error) {
	if getenv("GIN_MODE", "debug") == "debug" {
		if path, ok := findEnvFile(".env.dev"); ok {
			if err := godotenv.Load(path); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("could not load env file")
			} else {
				log.Info().Str("path", path).Msg("loaded env file")
			}
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.DB.SSLMode == "" {
		if cfg.GinMode == "release" {
			cfg.DB.SSLMode = "require"
		} else {
			cfg.DB.SSLMode = "disable"
		}
	}

	switch cfg.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}

	if cfg.DB.MaxAttempts < 1 {
		cfg.DB.MaxAttempts = 1
	}

	return cfg, nil
}

func (c *Config) DSN() string {
	if c.DB.Driver == DriverSQLite {
		return c.DB.SQLitePath
	}

	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DB.Host,
		c.DB.User,
		c.DB.Pass,
		c.DB.Name,
		c.DB.Port,
		c.DB.SSLMode,
		c.TZ,
	)
}

func findEnvFile(name string) (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
