package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	predictionrender "github.com/bnema/taixiu-predictor/internal/adapters/render/prediction"
	httpsource "github.com/bnema/taixiu-predictor/internal/adapters/source/http"
	tomlsource "github.com/bnema/taixiu-predictor/internal/adapters/source/toml"
	"github.com/bnema/taixiu-predictor/internal/application"
	"github.com/bnema/taixiu-predictor/internal/config"
	"github.com/bnema/taixiu-predictor/internal/domain"
	"github.com/bnema/taixiu-predictor/internal/engine"
	"github.com/bnema/taixiu-predictor/internal/ports"
	"github.com/bnema/taixiu-predictor/internal/random"
	"github.com/spf13/viper"
)

type app struct {
	cfg              config.Config
	service          *application.Service
	logger           *slog.Logger
	renderPrediction func(domain.Prediction, predictionrender.RenderOptions) (string, error)
	now              func() time.Time
}

func wireApp() (*app, error) {
	cfg, err := config.NewViper()
	if err != nil {
		return nil, fmt.Errorf("wire config: %w", err)
	}
	loaded, err := config.Load(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: loaded.LogLevel}))

	source, err := newRoundSource(cfg, loaded)
	if err != nil {
		return nil, fmt.Errorf("wire round source: %w", err)
	}

	rng, err := random.New()
	if err != nil {
		return nil, fmt.Errorf("wire random source: %w", err)
	}
	eng := engine.New(engine.WithRand(rng), engine.WithCapacity(loaded.Capacity))

	return &app{
		cfg: loaded,
		service: application.NewService(eng, source, ports.SystemClock{},
			application.WithFetchTimeout(loaded.SourceTimeout),
			application.WithLogger(logger),
		),
		logger:           logger,
		renderPrediction: predictionrender.Render,
		now:              time.Now,
	}, nil
}

func newRoundSource(cfg *viper.Viper, loaded config.Config) (ports.RoundSource, error) {
	switch loaded.SourceKind {
	case config.SourceKindTOML:
		return tomlsource.NewSource(cfg)
	default:
		return httpsource.Source{
			URL:            loaded.SourceURL,
			HTTPClient:     http.DefaultClient,
			RequestTimeout: loaded.SourceTimeout,
		}, nil
	}
}
