// Package config handles configuration for the development static server.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"os"

	"github.com/konega2/portfolio-sub001/internal/envx"
	"github.com/konega2/portfolio-sub001/internal/flagx"
)

// Config holds runtime settings for the dev server.
//
// Fields:
//   - Addr: bind address.
//   - StaticRoot: directory with the built portfolio site.
//   - Prefix: first path segment under which folder casing is normalized.
//   - S3Bucket: when set, folder existence is checked in this bucket instead
//     of StaticRoot. S3KeyPrefix is prepended to every key.
//   - S3Region / S3BaseEndpoint / S3AccessKey / S3SecretKey: S3 or MinIO access.
//     Without static keys the default AWS credential chain is used.
type Config struct {
	Addr           string `json:"addr"`
	StaticRoot     string `json:"static_root"`
	Prefix         string `json:"prefix"`
	S3Bucket       string `json:"s3_bucket"`
	S3KeyPrefix    string `json:"s3_key_prefix"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
	S3AccessKey    string `json:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key"`
	LogLevel       string `json:"log_level"`
}

// Environment variables recognised by LoadConfig.
const (
	EnvAddr           = "PORTFOLIO_DEV_ADDR"
	EnvStaticRoot     = "PORTFOLIO_DEV_STATIC_ROOT"
	EnvPrefix         = "PORTFOLIO_DEV_PREFIX"
	EnvS3Bucket       = "PORTFOLIO_DEV_S3_BUCKET"
	EnvS3KeyPrefix    = "PORTFOLIO_DEV_S3_KEY_PREFIX"
	EnvS3Region       = "PORTFOLIO_DEV_S3_REGION"
	EnvS3BaseEndpoint = "PORTFOLIO_DEV_S3_ENDPOINT"
	EnvS3AccessKey    = "PORTFOLIO_DEV_S3_ACCESS_KEY"
	EnvS3SecretKey    = "PORTFOLIO_DEV_S3_SECRET_KEY"
	EnvLogLevel       = "PORTFOLIO_DEV_LOG_LEVEL"
)

func (c *Config) LoadDefaults() {
	c.Addr = "127.0.0.1:5173"
	c.StaticRoot = "dist"
	c.Prefix = "proyectos"
	c.S3Region = "us-east-1"
	c.LogLevel = "info"
}

func (c *Config) Validate() error {
	if c.Prefix == "" {
		return errors.New("prefix is empty")
	}
	if c.StaticRoot == "" {
		return errors.New("static root is empty")
	}
	if st, err := os.Stat(c.StaticRoot); err != nil || !st.IsDir() {
		return errors.New("static root is not a directory: " + c.StaticRoot)
	}
	return nil
}

// LoadConfig applies defaults, the optional JSON file (-c/-config), the
// environment (after an optional .env file) and finally command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, flagx.ConfigFileFlag()); err != nil {
		return nil, err
	}
	if err := envx.LoadDotEnv(); err != nil {
		return nil, err
	}
	parseEnv(cfg)
	if err := parseFlags(cfg, os.Args[1:]); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseJson overlays the non-empty fields of the file at path. An empty path
// is a no-op.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fromFile Config
	if err := json.Unmarshal(b, &fromFile); err != nil {
		return err
	}
	overlay(&cfg.Addr, fromFile.Addr)
	overlay(&cfg.StaticRoot, fromFile.StaticRoot)
	overlay(&cfg.Prefix, fromFile.Prefix)
	overlay(&cfg.S3Bucket, fromFile.S3Bucket)
	overlay(&cfg.S3KeyPrefix, fromFile.S3KeyPrefix)
	overlay(&cfg.S3Region, fromFile.S3Region)
	overlay(&cfg.S3BaseEndpoint, fromFile.S3BaseEndpoint)
	overlay(&cfg.S3AccessKey, fromFile.S3AccessKey)
	overlay(&cfg.S3SecretKey, fromFile.S3SecretKey)
	overlay(&cfg.LogLevel, fromFile.LogLevel)
	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func parseEnv(cfg *Config) {
	envx.String(EnvAddr, &cfg.Addr)
	envx.String(EnvStaticRoot, &cfg.StaticRoot)
	envx.String(EnvPrefix, &cfg.Prefix)
	envx.String(EnvS3Bucket, &cfg.S3Bucket)
	envx.String(EnvS3KeyPrefix, &cfg.S3KeyPrefix)
	envx.String(EnvS3Region, &cfg.S3Region)
	envx.String(EnvS3BaseEndpoint, &cfg.S3BaseEndpoint)
	envx.String(EnvS3AccessKey, &cfg.S3AccessKey)
	envx.String(EnvS3SecretKey, &cfg.S3SecretKey)
	envx.String(EnvLogLevel, &cfg.LogLevel)
}

// parseFlags reads the short flags:
//
//	-a string   bind address
//	-r string   static root directory
//	-p string   normalized path prefix
//	-b string   S3 bucket used as the existence source
//	-l string   log level
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-r", "-p", "-b", "-l"})

	fs := flag.NewFlagSet("devserver", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "address and port to listen on")
	fs.StringVar(&cfg.StaticRoot, "r", cfg.StaticRoot, "static root directory")
	fs.StringVar(&cfg.Prefix, "p", cfg.Prefix, "path prefix whose folder segment is case-normalized")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket to check folder existence in")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	return fs.Parse(args)
}
