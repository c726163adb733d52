package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GIN_MODE", "test")
	t.Setenv("DB_SSLMODE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, 10, cfg.DB.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.DB.RetryDelay)
}

func TestLoad_ReleaseRequiresSSL(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("DB_SSLMODE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "require", cfg.DB.SSLMode)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("GIN_MODE", "test")
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_DebugReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.dev"), []byte("APP_ADDR=:9999\n"), 0o600))

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	t.Chdir(sub)

	t.Setenv("GIN_MODE", "debug")
	t.Setenv("APP_ADDR", "")
	os.Unsetenv("APP_ADDR")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		TZ: "UTC",
		DB: DB{
			Driver:  DriverPostgres,
			Host:    "db",
			Port:    "5432",
			User:    "u",
			Pass:    "p",
			Name:    "books",
			SSLMode: "disable",
		},
	}

	dsn := cfg.DSN()
	for _, part := range []string{"host=db", "user=u", "password=p", "dbname=books", "sslmode=disable", "TimeZone=UTC"} {
		assert.True(t, strings.Contains(dsn, part), "dsn %q missing %q", dsn, part)
	}

	cfg.DB.Driver = DriverSQLite
	cfg.DB.SQLitePath = "/tmp/books.db"
	assert.Equal(t, "/tmp/books.db", cfg.DSN())
}
