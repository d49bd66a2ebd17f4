package ports

import (
	"context"

	"github.com/bnema/taixiu-predictor/internal/domain"
)

// RoundSource fetches the current batch of raw rounds from upstream.
type RoundSource interface {
	Fetch(ctx context.Context) ([]domain.RawRound, error)
}
