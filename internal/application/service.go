package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bnema/taixiu-predictor/internal/domain"
	"github.com/bnema/taixiu-predictor/internal/engine"
	"github.com/bnema/taixiu-predictor/internal/ports"
)

const (
	DefaultFetchTimeout = 10 * time.Second

	tracerName = "github.com/bnema/taixiu-predictor/internal/application"
)

// Service runs prediction cycles against a round source and exposes the
// engine's state for inspection.
type Service struct {
	engine  *engine.Engine
	source  ports.RoundSource
	clock   ports.Clock
	timeout time.Duration
	logger  *slog.Logger
	tracer  trace.Tracer
}

type Option func(*Service)

func WithFetchTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

func NewService(eng *engine.Engine, source ports.RoundSource, clock ports.Clock, opts ...Option) *Service {
	if eng == nil {
		eng = engine.New()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	s := &Service{
		engine:  eng,
		source:  source,
		clock:   clock,
		timeout: DefaultFetchTimeout,
		logger:  slog.Default(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Predict fetches the latest rounds, folds them into the engine and returns
// the call for the session after the newest one. Any fetch or batch failure
// aborts the cycle and is reported as a data-source error.
func (s *Service) Predict(ctx context.Context) (domain.Prediction, error) {
	ctx, span := s.tracer.Start(ctx, "taixiu.predict")
	defer span.End()

	prediction, err := s.predict(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.WarnContext(ctx, "prediction cycle failed", slog.String("error", err.Error()))
		return domain.Prediction{}, err
	}

	span.SetAttributes(
		attribute.Int64("taixiu.session.next", int64(prediction.NextSession)),
		attribute.String("taixiu.prediction", prediction.Prediction.Name()),
		attribute.Float64("taixiu.confidence", prediction.Confidence),
	)
	s.logger.InfoContext(ctx, "prediction cycle",
		slog.Int64("session", int64(prediction.NextSession)),
		slog.String("prediction", prediction.Prediction.Name()),
		slog.Float64("confidence", prediction.Confidence),
	)
	return prediction, nil
}

func (s *Service) predict(ctx context.Context) (domain.Prediction, error) {
	rows, err := s.fetch(ctx)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("%w: %w", domain.ErrDataSource, err)
	}

	cycle, err := s.engine.Cycle(rows)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("%w: ingest rounds: %w", domain.ErrDataSource, err)
	}
	if !cycle.HasLatest {
		return domain.Prediction{}, domain.ErrNoHistory
	}

	latest := cycle.Latest
	return domain.Prediction{
		PreviousSession: latest.Session,
		NextSession:     latest.Session + 1,
		Dice:            latest.Dice,
		Total:           latest.Total,
		Outcome:         latest.Outcome,
		Prediction:      cycle.Forecast.Prediction,
		Confidence:      cycle.Forecast.Confidence,
		Explanation:     cycle.Forecast.Explanation,
		PatternSymbol:   latest.Outcome.Symbol(),
		GeneratedAt:     s.clock.Now(),
	}, nil
}

func (s *Service) fetch(ctx context.Context) ([]domain.RawRound, error) {
	if s.source == nil {
		return nil, fmt.Errorf("fetch rounds: no round source configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "taixiu.source.fetch")
	defer span.End()

	rows, err := s.source.Fetch(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("fetch rounds: %w", err)
	}
	span.SetAttributes(attribute.Int("taixiu.source.rows", len(rows)))
	return rows, nil
}

// Sync folds the latest rounds into history without predicting or touching
// the ledger. It returns the number of new rounds.
func (s *Service) Sync(ctx context.Context) (int, error) {
	ctx, span := s.tracer.Start(ctx, "taixiu.sync")
	defer span.End()

	rows, err := s.fetch(ctx)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("%w: %w", domain.ErrDataSource, err)
	}

	added, err := s.engine.Ingest(rows)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("%w: ingest rounds: %w", domain.ErrDataSource, err)
	}
	span.SetAttributes(attribute.Int("taixiu.rounds.added", added))
	s.logger.DebugContext(ctx, "history synced", slog.Int("added", added))
	return added, nil
}
