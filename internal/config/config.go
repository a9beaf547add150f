package config

import (
	"os"
	"strconv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// RedisConfig holds the optional entitlement cache settings.
// An empty Addr disables the cache.
type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	EntitlementTTL int
}

// AuthConfig holds the identity token verification settings.
type AuthConfig struct {
	JWTSecret  string
	CookieName string
}

// PaymentConfig holds the checkout widget settings and the fixed price of lifetime access.
type PaymentConfig struct {
	KeyID       string
	KeySecret   string
	Amount      int64
	Currency    string
	Plan        string
	ProductName string
	// PurchaseURL is where the purchase prompt sends users without a grant.
	PurchaseURL string
	// APIBaseURL is the provider's REST root used to create orders.
	APIBaseURL string
	TimeoutSec int
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Env      string
	Brand    string
	Database DatabaseConfig
	MinIO    MinIOConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Payment  PaymentConfig
	Log      LogConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"),
		Env:     getEnv("APP_ENV", EnvDevelopment),
		Brand:   getEnv("APP_BRAND", "StudyNotes"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Redis: RedisConfig{
			Addr:           getEnv("REDIS_ADDR", ""),
			Password:       getEnv("REDIS_PASSWORD", ""),
			DB:             getEnvInt("REDIS_DB", 0),
			EntitlementTTL: getEnvInt("REDIS_ENTITLEMENT_TTL_SEC", 600),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", ""),
			CookieName: getEnv("AUTH_COOKIE_NAME", "session"),
		},
		Payment: PaymentConfig{
			KeyID:       getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret:   getEnv("RAZORPAY_KEY_SECRET", ""),
			Amount:      int64(getEnvInt("PAYMENT_AMOUNT", 9900)), // minor units (paise)
			Currency:    getEnv("PAYMENT_CURRENCY", "INR"),
			Plan:        getEnv("PAYMENT_PLAN", "Lifetime Access"),
			ProductName: getEnv("PAYMENT_PRODUCT_NAME", "StudyNotes"),
			PurchaseURL: getEnv("PAYMENT_PURCHASE_URL", "/dashboard"),
			APIBaseURL:  getEnv("RAZORPAY_API_URL", "https://api.razorpay.com/v1"),
			TimeoutSec:  getEnvInt("RAZORPAY_TIMEOUT_SEC", 10),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
