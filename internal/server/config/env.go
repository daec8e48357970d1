package config

import (
	"errors"

	"github.com/konega2/portfolio-sub001/internal/envx"
)

// Environment variables recognised by parseEnv.
const (
	EnvHTTPAddr        = "PORTFOLIO_HTTP_ADDR"
	EnvGRPCAddr        = "PORTFOLIO_GRPC_ADDR"
	EnvDatabaseDSN     = "PORTFOLIO_DATABASE_DSN"
	EnvSecretKey       = "PORTFOLIO_JWT_SECRET"
	EnvTokenValidity   = "PORTFOLIO_TOKEN_VALIDITY"
	EnvBcryptCost      = "PORTFOLIO_BCRYPT_COST"
	EnvLoginRateLimit  = "PORTFOLIO_LOGIN_RATE_LIMIT"
	EnvLoginRateWindow = "PORTFOLIO_LOGIN_RATE_WINDOW"
	EnvRedisAddr       = "PORTFOLIO_REDIS_ADDR"
	EnvRedisPassword   = "PORTFOLIO_REDIS_PASSWORD"
	EnvRedisDB         = "PORTFOLIO_REDIS_DB"
	EnvLogLevel        = "PORTFOLIO_LOG_LEVEL"
)

// parseEnv overlays set environment variables onto config. All malformed
// values are reported together.
func parseEnv(config *Config) error {
	envx.String(EnvHTTPAddr, &config.EndpointAddrHTTP)
	envx.String(EnvGRPCAddr, &config.EndpointAddrGRPC)
	envx.String(EnvDatabaseDSN, &config.DatabaseDSN)
	envx.String(EnvSecretKey, &config.SecretKey)
	envx.String(EnvRedisAddr, &config.RedisAddr)
	envx.String(EnvRedisPassword, &config.RedisPassword)
	envx.String(EnvLogLevel, &config.LogLevel)

	return errors.Join(
		envx.Duration(EnvTokenValidity, &config.TokenValidityDuration),
		envx.Int(EnvBcryptCost, &config.BcryptCost),
		envx.Int(EnvLoginRateLimit, &config.LoginRateLimit),
		envx.Duration(EnvLoginRateWindow, &config.LoginRateWindow),
		envx.Int(EnvRedisDB, &config.RedisDB),
	)
}
