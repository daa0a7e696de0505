package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MAX_FILE_SIZE", "")
	t.Setenv("STORAGE_DRIVER", "")

	cfg := Load()

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadSize)
	assert.Equal(t, "local", cfg.StorageDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTAccessExpiry)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_FILE_SIZE", "1024")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("APP_ENV", "Production")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, int64(1024), cfg.MaxUploadSize)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.True(t, cfg.IsProduction())
}

func TestParseHelpers_FallBackOnGarbage(t *testing.T) {
	assert.Equal(t, 15*time.Minute, parseDuration("soon"))
	assert.Equal(t, 42, parseInt("forty-two", 42))
	assert.Equal(t, 7, parseInt(" 7 ", 0))
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5432", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}
