package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-a", ":9090", "-s", "secret"},
			allowed: []string{"-a"},
			want:    []string{"-a", ":9090"},
		},
		{
			name:    "equals form",
			args:    []string{"-p=proyectos", "-r", "dist"},
			allowed: []string{"-p"},
			want:    []string{"-p=proyectos"},
		},
		{
			name:    "double dash matches single dash name",
			args:    []string{"--config", "auth.json", "--c=other.json"},
			allowed: []string{"-c", "-config"},
			want:    []string{"--config", "auth.json", "--c=other.json"},
		},
		{
			name:    "positional and unknown arguments dropped",
			args:    []string{"serve", "-x", "1", "--y=2"},
			allowed: []string{"-a"},
			want:    []string{},
		},
		{
			name:    "flag at end without value",
			args:    []string{"-l"},
			allowed: []string{"-l"},
			want:    []string{"-l"},
		},
		{
			name:    "dash-prefixed token is not a value",
			args:    []string{"-t", "-8h"},
			allowed: []string{"-t"},
			want:    []string{"-t"},
		},
		{
			name:    "empty value kept",
			args:    []string{"-t", ""},
			allowed: []string{"-t"},
			want:    []string{"-t", ""},
		},
		{
			name:    "stops at terminator",
			args:    []string{"-a", "x", "--", "-a", "y"},
			allowed: []string{"-a"},
			want:    []string{"-a", "x"},
		},
		{
			name:    "repeats kept in order",
			args:    []string{"-r", "one", "-r", "two"},
			allowed: []string{"-r"},
			want:    []string{"-r", "one", "-r", "two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFile(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"-c", "/etc/portfolio/auth.json"}, "/etc/portfolio/auth.json"},
		{"long with equals", []string{"-config=/etc/portfolio/devserver.json"}, "/etc/portfolio/devserver.json"},
		{"absent", []string{"-a", ":8080"}, ""},
		{"last wins", []string{"-c", "1.json", "--config", "2.json"}, "2.json"},
		{"missing value", []string{"-c"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigFile(tt.args))
		})
	}
}

func TestConfigFileFlag_ReadsOSArgs(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"server", "-s", "k", "-c", "auth.json"}
	assert.Equal(t, "auth.json", ConfigFileFlag())
}
