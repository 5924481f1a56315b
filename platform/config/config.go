// Package config loads SeedStore settings from the environment (and a .env
// file when present). Consumers depend on the narrow per-concern interfaces,
// never on *Config itself.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides bearer token validation settings for middleware.
type JWTConfig interface {
	GetJWTSecret() string
	GetJWTIssuer() string
}

// SuperuserConfig lists the emails that are always provisioned as superusers.
type SuperuserConfig interface {
	GetSuperuserEmails() []string
}

// EmailConfig provides settings for SMTP email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// NotificationConfig provides settings for the notification module.
type NotificationConfig interface {
	GetAppBaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetAPIPrefix() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinIOPublicURL() string
	GetMinioBucketProductImages() string
	IsMinIOEnabled() bool
}

// RedisConfig provides the optional Redis connection used for shared rate limits.
type RedisConfig interface {
	GetRedisURL() string
}

// ChatConfig provides limits for the chat search and keyword agent endpoints.
type ChatConfig interface {
	GetChatRateLimitPerMinute() int
	GetChatRateLimitBurst() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                      string
	ProjectName              string
	HTTPAddr                 string
	APIPrefix                string
	DatabaseURL              string
	MigrationsDir            string
	JWTSecret                string
	JWTIssuer                string
	SuperuserEmails          []string
	CORSAllowAll             bool
	CORSOrigins              []string
	CORSAllowCreds           bool
	AppBaseURL               string
	EmailEnabled             bool
	SMTPHost                 string
	SMTPPort                 int
	SMTPUsername             string
	SMTPPassword             string
	EmailFromName            string
	EmailFromAddress         string
	MinIOEndpoint            string
	MinIOAccessKey           string
	MinIOSecretKey           string
	MinIOUseSSL              bool
	MinIOMaxFileSize         int64
	MinIOPublicURL           string
	MinioBucketProductImages string
	RedisURL                 string
	ChatRateLimitPerMinute   int
	ChatRateLimitBurst       int
	ShutdownTimeout          time.Duration
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTSecret() string { return c.JWTSecret }
func (c *Config) GetJWTIssuer() string { return c.JWTIssuer }

// SuperuserConfig implementation
func (c *Config) GetSuperuserEmails() []string { return c.SuperuserEmails }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

// NotificationConfig implementation
func (c *Config) GetAppBaseURL() string { return c.AppBaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetAPIPrefix() string     { return c.APIPrefix }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string   { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string  { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string  { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool       { return c.MinIOUseSSL }
func (c *Config) GetMinIOMaxFileSize() int64 { return c.MinIOMaxFileSize }
func (c *Config) GetMinIOPublicURL() string  { return c.MinIOPublicURL }
func (c *Config) GetMinioBucketProductImages() string {
	return c.MinioBucketProductImages
}
func (c *Config) IsMinIOEnabled() bool { return c.MinIOEndpoint != "" }

// RedisConfig implementation
func (c *Config) GetRedisURL() string { return c.RedisURL }

// ChatConfig implementation
func (c *Config) GetChatRateLimitPerMinute() int { return c.ChatRateLimitPerMinute }
func (c *Config) GetChatRateLimitBurst() int     { return c.ChatRateLimitBurst }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8000,http://127.0.0.1:3000,http://127.0.0.1:8000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	var num numbers
	smtpHost := getEnv("SMTP_HOST", "")
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")
	minioEndpoint := getEnv("MINIO_ENDPOINT", "")
	minioUseSSL := strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true")

	cfg := &Config{
		Env:                      getEnv("APP_ENV", "development"),
		ProjectName:              getEnv("PROJECT_NAME", "SeedStore API"),
		HTTPAddr:                 getEnv("HTTP_ADDR", ":8000"),
		APIPrefix:                getEnv("API_V1_STR", "/api/v1"),
		DatabaseURL:              getEnv("DATABASE_URL", ""),
		MigrationsDir:            getEnv("MIGRATIONS_DIR", "migrations"),
		JWTSecret:                getEnv("JWT_SECRET", ""),
		JWTIssuer:                getEnv("JWT_ISSUER", ""),
		SuperuserEmails:          lowerAll(splitCSV(getEnv("SUPERUSER_EMAILS", ""))),
		CORSAllowAll:             corsAllowAll,
		CORSOrigins:              corsOrigins,
		CORSAllowCreds:           strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		AppBaseURL:               getEnv("APP_BASE_URL", "http://localhost:3000"),
		EmailEnabled:             emailEnabled && smtpHost != "",
		SMTPHost:                 smtpHost,
		SMTPPort:                 num.intVar("SMTP_PORT", "587"),
		SMTPUsername:             getEnv("SMTP_USERNAME", ""),
		SMTPPassword:             getEnv("SMTP_PASSWORD", ""),
		EmailFromName:            getEnv("EMAIL_FROM_NAME", "SeedStore"),
		EmailFromAddress:         getEnv("EMAIL_FROM_ADDRESS", ""),
		MinIOEndpoint:            minioEndpoint,
		MinIOAccessKey:           getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:           getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:              minioUseSSL,
		MinIOMaxFileSize:         num.int64Var("MINIO_MAX_FILE_SIZE", "10485760"),
		MinIOPublicURL:           getEnv("MINIO_PUBLIC_URL", defaultPublicURL(minioEndpoint, minioUseSSL)),
		MinioBucketProductImages: getEnv("MINIO_BUCKET_PRODUCT_IMAGES", "product-images"),
		RedisURL:                 getEnv("REDIS_URL", ""),
		ChatRateLimitPerMinute:   num.intVar("CHAT_RATE_LIMIT_PER_MINUTE", "30"),
		ChatRateLimitBurst:       num.intVar("CHAT_RATE_LIMIT_BURST", "10"),
		ShutdownTimeout:          num.durationVar("SHUTDOWN_TIMEOUT", "10s"),
	}

	if err := errors.Join(num.errs...); err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.ChatRateLimitPerMinute < 1 {
		return nil, fmt.Errorf("CHAT_RATE_LIMIT_PER_MINUTE must be positive")
	}

	return cfg, nil
}

// IsSuperuserEmail reports whether email is listed in SUPERUSER_EMAILS.
func IsSuperuserEmail(cfg SuperuserConfig, email string) bool {
	normalized := strings.ToLower(strings.TrimSpace(email))
	for _, candidate := range cfg.GetSuperuserEmails() {
		if candidate == normalized {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// numbers parses numeric variables and remembers every malformed one, so a
// bad deployment reports all of them at once.
type numbers struct {
	errs []error
}

func (n *numbers) intVar(key, fallback string) int {
	v, err := strconv.Atoi(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		n.errs = append(n.errs, fmt.Errorf("%s must be an integer", key))
	}
	return v
}

func (n *numbers) int64Var(key, fallback string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(getEnv(key, fallback)), 10, 64)
	if err != nil {
		n.errs = append(n.errs, fmt.Errorf("%s must be an integer", key))
	}
	return v
}

func (n *numbers) durationVar(key, fallback string) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		n.errs = append(n.errs, fmt.Errorf("%s must be a duration such as 10s", key))
	}
	return v
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func lowerAll(values []string) []string {
	for i, v := range values {
		values[i] = strings.ToLower(v)
	}
	return values
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}

func defaultPublicURL(endpoint string, useSSL bool) string {
	if endpoint == "" {
		return ""
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}
