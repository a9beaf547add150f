package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_BRAND", "PAYMENT_AMOUNT", "PAYMENT_CURRENCY", "PAYMENT_PLAN", "AUTH_COOKIE_NAME", "APP_ENV", "RAZORPAY_API_URL", "RAZORPAY_TIMEOUT_SEC"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "StudyNotes", cfg.Brand)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, int64(9900), cfg.Payment.Amount)
	assert.Equal(t, "INR", cfg.Payment.Currency)
	assert.Equal(t, "Lifetime Access", cfg.Payment.Plan)
	assert.Equal(t, "https://api.razorpay.com/v1", cfg.Payment.APIBaseURL)
	assert.Equal(t, 10, cfg.Payment.TimeoutSec)
	assert.Equal(t, "session", cfg.Auth.CookieName)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
