// Package config handles configuration for the CLI client.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/konega2/portfolio-sub001/internal/envx"
	"github.com/konega2/portfolio-sub001/internal/flagx"
	"github.com/konega2/portfolio-sub001/internal/timex"
)

// Config holds runtime settings for the CLI.
//
// Fields:
//   - Transport: "grpc" (default) or "http".
//   - ServerEndpointAddr: host:port of the auth server gRPC endpoint.
//   - ServerHTTPURL: base URL of the auth server REST API.
//   - TokenFile: where the session token is kept between runs. Empty keeps
//     the token in memory only.
//   - RequestTimeout: deadline applied to every RPC.
type Config struct {
	Transport          string
	ServerEndpointAddr string
	ServerHTTPURL      string
	TokenFile          string
	RequestTimeout     time.Duration
}

// Environment variables recognised by LoadConfig.
const (
	EnvTransport      = "PORTFOLIO_CLI_TRANSPORT"
	EnvServerAddr     = "PORTFOLIO_CLI_SERVER_ADDR"
	EnvServerURL      = "PORTFOLIO_CLI_SERVER_URL"
	EnvTokenFile      = "PORTFOLIO_CLI_TOKEN_FILE"
	EnvRequestTimeout = "PORTFOLIO_CLI_TIMEOUT"
)

// LoadDefaults populates c with defaults. The token lives in the user config
// directory when one is available.
func (c *Config) LoadDefaults() {
	c.Transport = TransportGRPC
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.ServerHTTPURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	if dir, err := os.UserConfigDir(); err == nil {
		c.TokenFile = filepath.Join(dir, "portfolio", "token")
	}
}

// Supported transports.
const (
	TransportGRPC = "grpc"
	TransportHTTP = "http"
)

// ErrUnknownTransport is returned by Validate.
var ErrUnknownTransport = errors.New("unknown transport")

// Validate checks settings that would otherwise fail later.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportGRPC, TransportHTTP:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTransport, c.Transport)
	}
}

// LoadConfig applies defaults, JSON (-c/-config), environment and flags, in
// that order. Invalid JSON or flags panic.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	_ = envx.LoadDotEnv()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// JsonConfig is the on-disk shape of the CLI configuration.
type JsonConfig struct {
	Transport          string         `json:"transport"`
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	ServerHTTPURL      string         `json:"server_http_url"`
	TokenFile          string         `json:"token_file"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
}

func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.Transport != "" {
		cfg.Transport = jc.Transport
	}
	if jc.ServerHTTPURL != "" {
		cfg.ServerHTTPURL = jc.ServerHTTPURL
	}
	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.TokenFile != "" {
		cfg.TokenFile = jc.TokenFile
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func parseEnv(cfg *Config) error {
	envx.String(EnvTransport, &cfg.Transport)
	envx.String(EnvServerAddr, &cfg.ServerEndpointAddr)
	envx.String(EnvServerURL, &cfg.ServerHTTPURL)
	envx.String(EnvTokenFile, &cfg.TokenFile)
	return envx.Duration(EnvRequestTimeout, &cfg.RequestTimeout)
}

// parseFlags populates selected Config fields from command-line flags.
//
//	-m string     transport, grpc or http
//	-a string     address and port of the auth server gRPC endpoint
//	-u string     base URL of the auth server REST API
//	-t string     token file path ("" disables persistence)
//	-w duration   per-request timeout
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-m", "-a", "-u", "-t", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Transport, "m", cfg.Transport, "transport: grpc or http")
	fs.StringVar(&cfg.ServerHTTPURL, "u", cfg.ServerHTTPURL, "base URL of the REST API")
	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.TokenFile, "t", cfg.TokenFile, "session token file")
	fs.DurationVar(&cfg.RequestTimeout, "w", cfg.RequestTimeout, "request timeout")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
