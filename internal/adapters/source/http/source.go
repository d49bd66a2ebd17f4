package httpsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bnema/taixiu-predictor/internal/domain"
	"github.com/bnema/taixiu-predictor/internal/ports"
)

const (
	DefaultURL = "https://sunai.onrender.com/api/taixiu/history"

	maxHistoryResponseBytes = 4 << 20
	defaultRequestTimeout   = 10 * time.Second
)

// Source reads the round history from a remote JSON endpoint that answers
// with a list of round objects.
type Source struct {
	URL            string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.RoundSource = Source{}

func (s Source) Fetch(ctx context.Context) ([]domain.RawRound, error) {
	endpoint, err := validateURL(s.URL)
	if err != nil {
		return nil, err
	}

	requestCtx, cancel := s.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create history request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("request history: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("request history: status %d", resp.StatusCode)
	}

	var payload any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxHistoryResponseBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode history response: %w: %w", domain.ErrMalformedPayload, err)
	}

	rows, err := domain.RawRoundsFromPayload(payload)
	if err != nil {
		return nil, fmt.Errorf("decode history response: %w", err)
	}
	return rows, nil
}

func (s Source) httpClient() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return http.DefaultClient
}

func (s Source) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := s.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func validateURL(raw string) (string, error) {
	if raw == "" {
		return "", errors.New("history url is required")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse history url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("history url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("history url host is required")
	}
	return parsed.String(), nil
}
