package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/greenpepperchocolate/english-phrase/pkg/jwtx"
)

type Config struct {
	Issuer    string // Issuer claim for session tokens (default: english-phrase-auth)
	JWTSecret string // Required: HS256 signing secret for session tokens

	AccessTTL  time.Duration // Access token lifetime (default: 30m)
	RefreshTTL time.Duration // Refresh token lifetime (default: 336h)

	MediaSigningSecret string        // Optional: HMAC secret for signed media URLs; unset degrades to local hosting
	MediaAccessKeyID   string        // Key-Pair-Id value embedded in signed URLs
	MediaPublicBase    string        // Public CDN/bucket base URL
	MediaLocalBase     string        // Local static base used when signing is unconfigured
	MediaSignedURLTTL  time.Duration // Default signed URL lifetime (default: 15m)

	RedisURI string // Optional: counter store; unset falls back to in-process counters

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	MailSupport  string // Destination for contact messages

	ContactLimit  int64         // Contact messages per identity per window (default: 5)
	ContactWindow time.Duration // Contact rate-limit window (default: 1h)

	DatabaseFile         string        // Path to SQLite database file (default: ./auth.db)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Issuer:    getEnvOrDefault("AUTH_ISSUER", "english-phrase-auth"),
		JWTSecret: os.Getenv("AUTH_JWT_SECRET"),

		AccessTTL:  getEnvDurationOrDefault("AUTH_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL: getEnvDurationOrDefault("AUTH_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),

		MediaSigningSecret: os.Getenv("MEDIA_SIGNING_SECRET"),
		MediaAccessKeyID:   os.Getenv("MEDIA_ACCESS_KEY_ID"),
		MediaPublicBase:    getEnvOrDefault("MEDIA_PUBLIC_BASE_URL", "http://localhost:8080/media"),
		MediaLocalBase:     getEnvOrDefault("MEDIA_LOCAL_BASE_URL", "http://localhost:8080/media"),
		MediaSignedURLTTL:  getEnvDurationOrDefault("MEDIA_SIGNED_URL_TTL", 15*time.Minute),

		RedisURI: os.Getenv("REDIS_URI"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		MailSupport:  os.Getenv("MAIL_SUPPORT"),

		ContactLimit:  int64(getEnvIntOrDefault("CONTACT_LIMIT", 5)),
		ContactWindow: getEnvDurationOrDefault("CONTACT_WINDOW", time.Hour),

		DatabaseFile:         getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Hour),
	}
}

// Validate catches configuration errors at startup rather than on the
// first request.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET is required")
	}
	if c.MediaSigningSecret != "" && c.MediaAccessKeyID == "" {
		return errors.New("MEDIA_ACCESS_KEY_ID is required when MEDIA_SIGNING_SECRET is set")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
