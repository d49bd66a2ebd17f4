package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/taixiu-predictor/internal/domain"
	"github.com/bnema/taixiu-predictor/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	PathKey = "source.path"

	roundsFileMode  = 0o600
	roundsDirMode   = 0o700
	roundsConfigDir = ".taixiu"
	roundsFile      = "rounds.toml"
	tempFilePattern = ".rounds-*.toml.tmp"
)

// Source serves rounds from a local TOML fixture. The file is re-read on
// every fetch so rounds appended between cycles are picked up.
type Source struct {
	roundsPath string
}

var _ ports.RoundSource = (*Source)(nil)

func NewSource(cfg *viper.Viper) (*Source, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	cfg.SetDefault(PathKey, filepath.Join(homeDir, roundsConfigDir, roundsFile))

	roundsPath := cfg.GetString(PathKey)
	if roundsPath == "" {
		return nil, errors.New("rounds path is empty")
	}
	roundsPath, err = filepath.Abs(roundsPath)
	if err != nil {
		return nil, fmt.Errorf("resolve rounds path: %w", err)
	}

	return &Source{roundsPath: filepath.Clean(roundsPath)}, nil
}

func (s *Source) Path() string {
	return s.roundsPath
}

func (s *Source) Fetch(ctx context.Context) ([]domain.RawRound, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.roundsPath)
	if err != nil {
		return nil, fmt.Errorf("read rounds file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode rounds file: %w: %w", domain.ErrMalformedPayload, err)
	}
	if err := file.validateVersion(); err != nil {
		return nil, err
	}
	file.applyDefaults()

	rows, err := file.rawRounds()
	if err != nil {
		return nil, fmt.Errorf("decode rounds file: %w", err)
	}
	return rows, nil
}

// WriteRounds replaces the fixture with rounds, atomically.
func WriteRounds(path string, rounds []domain.Round) error {
	file := writeSchema{Version: currentSchemaVersion, Rounds: make([]roundSchema, 0, len(rounds))}
	for _, round := range rounds {
		file.Rounds = append(file.Rounds, toSchema(round))
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode rounds file: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, roundsDirMode); err != nil {
		return fmt.Errorf("create rounds directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp rounds file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp rounds file: %w", err)
	}
	if err := tmp.Chmod(roundsFileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp rounds file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp rounds file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace rounds file: %w", err)
	}

	return nil
}
