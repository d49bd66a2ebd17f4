// Package config loads the predictor's file configuration through viper and
// the server's process environment through caarlos0/env.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"

	httpsource "github.com/bnema/taixiu-predictor/internal/adapters/source/http"
	"github.com/bnema/taixiu-predictor/internal/engine"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".taixiu"
	envPrefix  = "TAIXIU"

	SourceKindKey    = "source.kind"
	SourceURLKey     = "source.url"
	SourceTimeoutKey = "source.timeout"
	SourcePathKey    = "source.path"
	CapacityKey      = "history.capacity"
	LogLevelKey      = "log.level"

	SourceKindHTTP = "http"
	SourceKindTOML = "toml"
)

// Config is the resolved file configuration.
type Config struct {
	SourceKind    string
	SourceURL     string
	SourceTimeout time.Duration
	SourcePath    string
	Capacity      int
	LogLevel      slog.Level
}

// NewViper returns a viper instance reading ~/.taixiu/config.toml with
// TAIXIU_ environment overrides and every default set.
func NewViper() (*viper.Viper, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg := viper.New()
	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(SourceKindKey, SourceKindHTTP)
	cfg.SetDefault(SourceURLKey, httpsource.DefaultURL)
	cfg.SetDefault(SourceTimeoutKey, 10*time.Second)
	cfg.SetDefault(SourcePathKey, filepath.Join(homeDir, configDir, "rounds.toml"))
	cfg.SetDefault(CapacityKey, engine.DefaultCapacity)
	cfg.SetDefault(LogLevelKey, "info")

	return cfg, nil
}

// Load reads the config file if present and resolves every key. A missing
// config file is not an error.
func Load(cfg *viper.Viper) (Config, error) {
	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	kind := strings.ToLower(strings.TrimSpace(cfg.GetString(SourceKindKey)))
	switch kind {
	case SourceKindHTTP, SourceKindTOML:
	default:
		return Config{}, fmt.Errorf("unsupported source kind %q", kind)
	}

	capacity := cfg.GetInt(CapacityKey)
	if capacity <= 0 {
		return Config{}, fmt.Errorf("history capacity must be positive, got %d", capacity)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.GetString(LogLevelKey))); err != nil {
		return Config{}, fmt.Errorf("parse log level: %w", err)
	}

	return Config{
		SourceKind:    kind,
		SourceURL:     cfg.GetString(SourceURLKey),
		SourceTimeout: cfg.GetDuration(SourceTimeoutKey),
		SourcePath:    cfg.GetString(SourcePathKey),
		Capacity:      capacity,
		LogLevel:      level,
	}, nil
}

// ServerConfig is the environment of the serve command.
type ServerConfig struct {
	Port              int           `env:"PORT" envDefault:"3000"`
	OTelEndpoint      string        `env:"TAIXIU_OTEL_ENDPOINT"`
	ReadHeaderTimeout time.Duration `env:"TAIXIU_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout   time.Duration `env:"TAIXIU_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// ParseServerEnv loads ServerConfig from environment variables.
func ParseServerEnv() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return ServerConfig{}, fmt.Errorf("parse env: invalid port %d", cfg.Port)
	}
	return cfg, nil
}
