package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// AI provider (OpenAI-compatible chat completions)
	AIAPIKey    string
	AIAPIURL    string
	AIModel     string
	AITimeout   time.Duration
	AIMaxTokens int

	// Uploads
	StorageDriver    string // local, gcs
	UploadDir        string
	PublicUploadPath string
	MaxUploadSize    int64
	GCSBucket        string
	GCSPublicBaseURL string
	GCSCredentials   string

	// Rate limiting
	RedisURL         string
	RateLimitMax     int
	RateLimitWindow  time.Duration
	AuthRateLimitMax int

	// Admin
	AdminUsernames string
	AdminToken     string

	// Observability
	SentryDSN string
	AppEnv    string

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "furry_kids"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "24h")),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h")),

		AIAPIKey:    getEnv("OPENROUTER_API_KEY", ""),
		AIAPIURL:    getEnv("OPENROUTER_API_URL", "https://openrouter.ai/api/v1/chat/completions"),
		AIModel:     getEnv("AI_MODEL", "google/gemma-2-9b-it:free"),
		AITimeout:   parseDuration(getEnv("AI_TIMEOUT", "30s")),
		AIMaxTokens: parseInt(getEnv("AI_MAX_TOKENS", "300"), 300),

		StorageDriver:    getEnv("STORAGE_DRIVER", "local"),
		UploadDir:        getEnv("UPLOAD_DIR", "uploads"),
		PublicUploadPath: getEnv("PUBLIC_UPLOAD_PATH", "/uploads"),
		MaxUploadSize:    int64(parseInt(getEnv("MAX_FILE_SIZE", "5242880"), 5*1024*1024)),
		GCSBucket:        getEnv("GCS_BUCKET", ""),
		GCSPublicBaseURL: getEnv("GCS_PUBLIC_BASE_URL", ""),
		GCSCredentials:   getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),

		RedisURL:         getEnv("REDIS_URL", ""),
		RateLimitMax:     parseInt(getEnv("RATE_LIMIT_REQUESTS", "100"), 100),
		RateLimitWindow:  parseDuration(getEnv("RATE_LIMIT_WINDOW", "1m")),
		AuthRateLimitMax: parseInt(getEnv("AUTH_RATE_LIMIT_REQUESTS", "10"), 10),

		AdminUsernames: getEnv("ADMIN_USERNAMES", "admin"),
		AdminToken:     getEnv("ADMIN_TOKEN", ""),

		SentryDSN: getEnv("SENTRY_DSN", ""),
		AppEnv:    getEnv("APP_ENV", "development"),

		Port:        getEnv("PORT", "3001"),
		CORSOrigins: getEnv("ALLOWED_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// IsProduction reports whether cookies and error output should be locked down.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}
