// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultTokenSecret = "your-secret-key-change-in-production"

type Config struct {
	Environment string
	LogLevel    string
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Redis       RedisConfig
	AWS         AWSConfig
	Payment     PaymentConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	I18n        I18nConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	URI            string
	Name           string
	ConnectTimeout int // in seconds
	QueryTimeout   int // in seconds
}

type JWTConfig struct {
	SecretKey string
	TTLHours  int
	Issuer    string
}

type RedisConfig struct {
	URL             string
	ListingCacheTTL int // in seconds
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	CloudFrontURL   string
}

type PaymentConfig struct {
	StripeSecretKey string
	Currency        string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	AuthPerMinute     int
	AuthBurst         int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type I18nConfig struct {
	DefaultLocale string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Name:           getEnv("MONGODB_DATABASE", "FreshCartDB"),
			ConnectTimeout: getEnvAsInt("MONGODB_CONNECT_TIMEOUT", 10),
			QueryTimeout:   getEnvAsInt("MONGODB_QUERY_TIMEOUT", 10),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("ACCESS_TOKEN_SECRET", defaultTokenSecret),
			TTLHours:  getEnvAsInt("JWT_TTL_HOURS", 168), // 7 days
			Issuer:    getEnv("JWT_ISSUER", "freshcart"),
		},
		Redis: RedisConfig{
			URL:             getEnv("REDIS_URL", ""),
			ListingCacheTTL: getEnvAsInt("LISTING_CACHE_TTL", 60),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", "freshcart-assets"),
			CloudFrontURL:   getEnv("AWS_CLOUDFRONT_URL", ""),
		},
		Payment: PaymentConfig{
			StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
			Currency:        getEnv("PAYMENT_CURRENCY", "usd"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 10),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 20),
			AuthPerMinute:     getEnvAsInt("AUTH_RATE_LIMIT_PER_MINUTE", 10),
			AuthBurst:         getEnvAsInt("AUTH_RATE_LIMIT_BURST", 5),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == defaultTokenSecret && c.IsProduction() {
		return fmt.Errorf("ACCESS_TOKEN_SECRET must be changed in production")
	}

	if c.JWT.TTLHours <= 0 {
		return fmt.Errorf("JWT_TTL_HOURS must be positive, got %d", c.JWT.TTLHours)
	}

	if c.Database.URI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}

	if c.Payment.StripeSecretKey == "" && c.IsProduction() {
		return fmt.Errorf("STRIPE_SECRET_KEY is required in production")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TTLHours) * time.Hour
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
