package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"PORT", "DB_PATH", "JWT_SECRET", "TOKEN_DURATION", "LOG_LEVEL", "LOG_FORMAT",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "BALANCE_CACHE_TTL",
	"AMQP_URL", "AMQP_EXCHANGE", "AMQP_ROUTING_KEY", "BALANCED_EQUAL_SPLIT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := FromEnv()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./data/splitit.db", cfg.DBPath)
	assert.Equal(t, 24*time.Hour, cfg.TokenDuration)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 5*time.Minute, cfg.BalanceCacheTTL)
	assert.Empty(t, cfg.AMQPURL)
	assert.Equal(t, "splitit", cfg.AMQPExchange)
	assert.Equal(t, "expense.created", cfg.AMQPRoutingKey)
	assert.False(t, cfg.BalancedEqualSplit)
	assert.Equal(t, ":8080", cfg.Addr())

	// Only the secret is mandatory.
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	cfg.JWTSecret = "0123456789abcdef"
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("BALANCE_CACHE_TTL", "30s")
	t.Setenv("BALANCED_EQUAL_SPLIT", "true")
	t.Setenv("TOKEN_DURATION", "not-a-duration")

	cfg := FromEnv()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenDuration)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 30*time.Second, cfg.BalanceCacheTTL)
	assert.True(t, cfg.BalancedEqualSplit)
}

func TestValidate_CollectsProblems(t *testing.T) {
	cfg := &Config{
		Port:          "99999",
		DBPath:        "",
		JWTSecret:     "short",
		TokenDuration: time.Second,
		LogLevel:      "loud",
		LogFormat:     "xml",
		AMQPURL:       "http://broker",
	}

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{
		"invalid port 99999",
		"database path",
		"JWT_SECRET",
		"token duration",
		"log level",
		"log format",
		"AMQP URL scheme",
		"AMQP exchange",
		"AMQP routing key",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=7070\nJWT_SECRET=from-dotenv-secret-value\n"), 0o600))
	t.Setenv("PORT", "6060")
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "6060", cfg.Port)
	assert.Equal(t, "from-dotenv-secret-value", cfg.JWTSecret)
	t.Cleanup(func() { os.Unsetenv("JWT_SECRET") })
}

func TestLoad_NoDotEnv(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
