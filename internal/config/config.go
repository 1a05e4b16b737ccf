// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server    ServerConfig
	Upload    UploadConfig
	Import    ImportConfig
	Rate      RateLimitConfig
	Security  SecurityConfig
	Logging   LoggingConfig
	Sync      SyncConfig
	Directory DirectoryConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 30s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`

	// WriteTimeout is the maximum duration for writing response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// UploadConfig holds file upload settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed file size in bytes (default: 20MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"20971520"`
}

// ImportConfig holds import pipeline settings.
type ImportConfig struct {
	// MaxConcurrent is the maximum number of parallel imports (default: 2)
	MaxConcurrent int `env:"IMPORT_MAX_CONCURRENT" default:"2"`

	// MaxWaitTime is how long to wait for an import slot (default: 30s)
	MaxWaitTime time.Duration `env:"IMPORT_MAX_WAIT_TIME" default:"30s"`

	// Timeout is the maximum duration for a single import (default: 2m)
	Timeout time.Duration `env:"IMPORT_TIMEOUT" envAlt:"UPLOAD_TIMEOUT" default:"2m"`
}

// RateLimitConfig holds per-client rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// ImportLimit is requests per minute for import endpoints (default: 10)
	ImportLimit int `env:"RATE_LIMIT_IMPORT" envAlt:"RATE_LIMIT_UPLOAD" default:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// APIKeys is a comma-separated list of keys accepted in X-API-Key
	APIKeys []string `env:"API_KEYS"`

	// RequireAPIKey enforces API keys on mutating routes (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// CORSOrigins is a comma-separated list of allowed browser origins
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Sync backend names.
const (
	SyncNone     = "none"
	SyncGitHub   = "github"
	SyncPostgres = "postgres"
	SyncRedis    = "redis"
	SyncMinIO    = "minio"
)

// SyncConfig selects and configures the remote document store.
type SyncConfig struct {
	// Backend is one of none, github, postgres, redis, minio (default: none)
	Backend string `env:"SYNC_BACKEND" default:"none"`

	// Key names the document within the backend (default: lawyers.json)
	Key string `env:"SYNC_KEY" default:"lawyers.json"`

	// PullOnStart loads the directory from the backend at startup (default: true)
	PullOnStart bool `env:"SYNC_PULL_ON_START" default:"true"`

	// AutoPush pushes the directory after every change (default: false)
	AutoPush bool `env:"SYNC_AUTO_PUSH" default:"false"`

	// Timeout bounds a single pull or push (default: 30s)
	Timeout time.Duration `env:"SYNC_TIMEOUT" default:"30s"`

	GitHub   GitHubConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	MinIO    MinIOConfig
}

// GitHubConfig configures the repository contents backend.
type GitHubConfig struct {
	Owner   string `env:"GITHUB_OWNER"`
	Repo    string `env:"GITHUB_REPO"`
	Branch  string `env:"GITHUB_BRANCH" default:"main"`
	Token   string `env:"GITHUB_TOKEN"`
	BaseURL string `env:"GITHUB_API_URL" default:"https://api.github.com"`
}

// PostgresConfig configures the document table backend.
type PostgresConfig struct {
	// URL is the PostgreSQL connection string
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`
}

// RedisConfig configures the key/value backend.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" default:"0"`
}

// MinIOConfig configures the object storage backend.
type MinIOConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET" default:"lawdir"`
	UseSSL    bool   `env:"MINIO_USE_SSL" default:"false"`
}

// DirectoryConfig holds defaults applied to imported records.
type DirectoryConfig struct {
	// DefaultLanguage is used when a record lists no languages (default: English)
	DefaultLanguage string `env:"DIRECTORY_DEFAULT_LANGUAGE" default:"English"`

	// PlaceholderImage is used when a record has no image (default: /placeholder.svg)
	PlaceholderImage string `env:"DIRECTORY_PLACEHOLDER_IMAGE" default:"/placeholder.svg"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
