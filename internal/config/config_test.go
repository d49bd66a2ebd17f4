package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(t *testing.T, contents string) (string, *Config, error) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	if contents != "" {
		dir := filepath.Join(home, ".taixiu")
		require.NoError(t, os.MkdirAll(dir, 0o700))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(contents), 0o600))
	}

	cfg, err := NewViper()
	require.NoError(t, err)
	loaded, err := Load(cfg)
	if err != nil {
		return home, nil, err
	}
	return home, &loaded, nil
}

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	home, cfg, err := newTestViper(t, "")
	require.NoError(t, err)

	assert.Equal(t, SourceKindHTTP, cfg.SourceKind)
	assert.Equal(t, "https://sunai.onrender.com/api/taixiu/history", cfg.SourceURL)
	assert.Equal(t, 10*time.Second, cfg.SourceTimeout)
	assert.Equal(t, filepath.Join(home, ".taixiu", "rounds.toml"), cfg.SourcePath)
	assert.Equal(t, 300, cfg.Capacity)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadReadsConfigFile(t *testing.T) {
	_, cfg, err := newTestViper(t, `
[source]
kind = "toml"
path = "/tmp/rounds.toml"
timeout = "3s"

[history]
capacity = 120

[log]
level = "debug"
`)
	require.NoError(t, err)

	assert.Equal(t, SourceKindTOML, cfg.SourceKind)
	assert.Equal(t, "/tmp/rounds.toml", cfg.SourcePath)
	assert.Equal(t, 3*time.Second, cfg.SourceTimeout)
	assert.Equal(t, 120, cfg.Capacity)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("TAIXIU_SOURCE_URL", "http://127.0.0.1:9999/history")
	t.Setenv("TAIXIU_HISTORY_CAPACITY", "42")

	_, cfg, err := newTestViper(t, "[history]\ncapacity = 120\n")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999/history", cfg.SourceURL)
	assert.Equal(t, 42, cfg.Capacity)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     string
	}{
		{name: "source kind", contents: "[source]\nkind = \"grpc\"\n", want: "unsupported source kind"},
		{name: "capacity", contents: "[history]\ncapacity = 0\n", want: "history capacity must be positive"},
		{name: "log level", contents: "[log]\nlevel = \"loud\"\n", want: "parse log level"},
		{name: "syntax", contents: "[source\n", want: "read config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := newTestViper(t, tt.contents)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseServerEnv(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TAIXIU_OTEL_ENDPOINT", "")

	cfg, err := ParseServerEnv()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, 5*time.Second, cfg.ReadHeaderTimeout)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.OTelEndpoint)

	t.Setenv("PORT", "8081")
	t.Setenv("TAIXIU_OTEL_ENDPOINT", "http://localhost:4318")
	cfg, err = ParseServerEnv()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "http://localhost:4318", cfg.OTelEndpoint)
}

func TestParseServerEnvErrors(t *testing.T) {
	t.Setenv("PORT", "not-an-int")
	_, err := ParseServerEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")

	t.Setenv("PORT", "70000")
	_, err = ParseServerEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
}
