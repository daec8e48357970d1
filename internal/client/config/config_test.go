package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, TransportGRPC, c.Transport)
	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, "http://127.0.0.1:8080", c.ServerHTTPURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	if dir, err := os.UserConfigDir(); err == nil {
		assert.Equal(t, filepath.Join(dir, "portfolio", "token"), c.TokenFile)
	}
}

func TestLoadConfig_Layers(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_endpoint_addr":"json:1","token_file":"/tmp/json-token","request_timeout":"3s"}`), 0o600))
	t.Setenv(EnvTokenFile, "/tmp/env-token")

	os.Args = []string{"cli", "-config", path, "-w", "7s", "-m", "http"}

	got, err := LoadConfig()
	require.NoError(t, err)
	want := &Config{
		Transport:          TransportHTTP,
		ServerEndpointAddr: "json:1",
		ServerHTTPURL:      "http://127.0.0.1:8080",
		TokenFile:          "/tmp/env-token",
		RequestTimeout:     7 * time.Second,
	}
	assert.Empty(t, cmp.Diff(want, got))
}

func TestLoadConfig_UnknownTransport(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Chdir(t.TempDir())
	os.Args = []string{"cli", "-m", "carrier-pigeon"}

	_, err := LoadConfig()
	assert.ErrorIs(t, err, ErrUnknownTransport)
}

func TestParseFlags_EmptyTokenFileDisablesPersistence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cli", "-t", ""}

	c := &Config{TokenFile: "/somewhere"}
	parseFlags(c)
	assert.Equal(t, "", c.TokenFile)
}

func TestParseEnv_InvalidTimeout(t *testing.T) {
	t.Setenv(EnvRequestTimeout, "soon")
	assert.Error(t, parseEnv(&Config{}))
}

func TestParseJson_Panics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	os.Args = []string{"cli", "-c", bad}

	require.Panics(t, func() { parseJson(&Config{}) })
}
