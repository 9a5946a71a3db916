package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server      ServerConfig
	Mongo       MongoConfig
	Auth        AuthConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Logging     LoggingConfig
	Tracing     TracingConfig
	Email       EmailConfig
	Seed        SeedConfig
	Environment string
}

type ServerConfig struct {
	Host string
	Port int
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	QueryTimeout   time.Duration
}

type AuthConfig struct {
	SessionSecret string
	SessionTTL    time.Duration
}

type CORSConfig struct {
	AllowedOrigins  []string
	AllowAllOrigins bool
}

type RateLimitConfig struct {
	PublicPerMinute int
	AuthPerMinute   int
	// TrustedProxyCIDRs lists the proxies whose forwarding headers are
	// believed when identifying clients for rate limiting.
	TrustedProxyCIDRs []string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type TracingConfig struct {
	Enabled      bool
	ServiceName  string
	Exporter     string
	OTLPEndpoint string
	SampleRate   float64
}

type EmailConfig struct {
	Enabled bool
	APIKey  string
	From    string
}

type SeedConfig struct {
	OnBoot bool
}

func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvInt("SERVER_PORT", 5000),
		},
		Mongo: MongoConfig{
			URI:            getEnv("MONGODB_URI", ""),
			Database:       getEnv("MONGODB_DATABASE", "helphive"),
			ConnectTimeout: time.Duration(getEnvInt("MONGODB_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second,
			QueryTimeout:   time.Duration(getEnvInt("MONGODB_QUERY_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Auth: AuthConfig{
			SessionSecret: getEnv("SESSION_SECRET", ""),
			SessionTTL:    time.Duration(getEnvInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:5173",
				"http://localhost:3000",
			}),
			AllowAllOrigins: getEnvBool("CORS_ALLOW_ALL", false),
		},
		RateLimit: RateLimitConfig{
			PublicPerMinute:   getEnvInt("RATE_LIMIT_PUBLIC", 120),
			AuthPerMinute:     getEnvInt("RATE_LIMIT_AUTH", 30),
			TrustedProxyCIDRs: getEnvList("RATE_LIMIT_TRUSTED_PROXIES", nil),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Tracing: TracingConfig{
			Enabled:      getEnvBool("TRACING_ENABLED", false),
			ServiceName:  getEnv("TRACING_SERVICE_NAME", "helphive-server"),
			Exporter:     getEnv("TRACING_EXPORTER", "stdout"),
			OTLPEndpoint: getEnv("TRACING_OTLP_ENDPOINT", "localhost:4317"),
			SampleRate:   getEnvFloat("TRACING_SAMPLE_RATE", 1.0),
		},
		Email: EmailConfig{
			Enabled: getEnvBool("EMAIL_ENABLED", false),
			APIKey:  getEnv("RESEND_API_KEY", ""),
			From:    getEnv("EMAIL_FROM", ""),
		},
		Seed: SeedConfig{
			OnBoot: getEnvBool("SEED_ON_BOOT", true),
		},
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if cfg.Mongo.URI == "" {
		return Config{}, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.Auth.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}
	if cfg.IsProduction() {
		if os.Getenv("CORS_ALLOWED_ORIGINS") == "" {
			return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS is required in production")
		}
		if cfg.CORS.AllowAllOrigins {
			return Config{}, fmt.Errorf("CORS_ALLOW_ALL must not be set in production")
		}
	}
	if cfg.Email.Enabled && cfg.Email.APIKey == "" {
		return Config{}, fmt.Errorf("RESEND_API_KEY is required when EMAIL_ENABLED is true")
	}
	return cfg, nil
}

// IsProduction reports whether the server runs in the production deployment
// mode, which controls cookie security attributes and error detail exposure.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
