package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/konega2/portfolio-sub001/internal/envx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv(EnvHTTPAddr, ":8181")
	t.Setenv(EnvGRPCAddr, "")
	t.Setenv(EnvDatabaseDSN, "postgres://db")
	t.Setenv(EnvSecretKey, "env-secret")
	t.Setenv(EnvTokenValidity, "4h")
	t.Setenv(EnvBcryptCost, "12")
	t.Setenv(EnvLoginRateLimit, "3")
	t.Setenv(EnvLoginRateWindow, "30s")
	t.Setenv(EnvRedisAddr, "redis:6379")
	t.Setenv(EnvRedisPassword, "pw")
	t.Setenv(EnvRedisDB, "2")
	t.Setenv(EnvLogLevel, "debug")

	c := &Config{}
	c.LoadDefaults()
	require.NoError(t, parseEnv(c))

	want := &Config{
		EndpointAddrHTTP:      ":8181",
		EndpointAddrGRPC:      "",
		DatabaseDSN:           "postgres://db",
		SecretKey:             "env-secret",
		TokenValidityDuration: 4 * time.Hour,
		BcryptCost:            12,
		LoginRateLimit:        3,
		LoginRateWindow:       30 * time.Second,
		RedisAddr:             "redis:6379",
		RedisPassword:         "pw",
		RedisDB:               2,
		LogLevel:              "debug",
	}
	assert.Empty(t, cmp.Diff(want, c))
}

func TestParseEnv_InvalidValues(t *testing.T) {
	t.Setenv(EnvTokenValidity, "eight hours")
	t.Setenv(EnvRedisDB, "zero")

	c := &Config{}
	c.LoadDefaults()
	err := parseEnv(c)
	require.Error(t, err)

	var envErr *envx.Error
	require.ErrorAs(t, err, &envErr)
	assert.Contains(t, err.Error(), EnvTokenValidity)
	assert.Contains(t, err.Error(), EnvRedisDB)
	assert.Equal(t, 8*time.Hour, c.TokenValidityDuration, "bad value must not clobber the default")
}
