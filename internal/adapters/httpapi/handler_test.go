package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bnema/taixiu-predictor/internal/domain"
	"github.com/bnema/taixiu-predictor/internal/engine"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPredictor struct {
	prediction   domain.Prediction
	err          error
	rounds       []domain.Round
	patterns     engine.PatternTable
	historyLimit int
	panics       bool
}

func (s *stubPredictor) Predict(context.Context) (domain.Prediction, error) {
	if s.panics {
		panic("boom")
	}
	return s.prediction, s.err
}

func (s *stubPredictor) History(limit int) []domain.Round {
	s.historyLimit = limit
	return s.rounds
}

func (s *stubPredictor) Patterns() engine.PatternTable {
	return s.patterns
}

func serve(t *testing.T, predictor Predictor, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(predictor, slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPredictReturnsPrediction(t *testing.T) {
	predictor := &stubPredictor{prediction: domain.Prediction{
		PreviousSession: 41,
		NextSession:     42,
		Dice:            [3]int{2, 3, 6},
		Total:           11,
		Outcome:         domain.OutcomeHigh,
		Prediction:      domain.OutcomeLow,
		Confidence:      0.74,
		Explanation:     "Rules: low mean (9.2)",
		PatternSymbol:   "T",
		GeneratedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}}

	rec := serve(t, predictor, http.MethodGet, "/api/custom")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"previous_session": 41,
		"next_session": 42,
		"dice": [2, 3, 6],
		"total": 11,
		"outcome": "Tài",
		"prediction": "Xỉu",
		"confidence": 0.74,
		"explanation": "Rules: low mean (9.2)",
		"pattern_symbol": "T",
		"generated_at": "2026-01-02T03:04:05Z"
	}`, rec.Body.String())
}

func TestPredictMapsErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantDetail string
	}{
		{
			name:       "no history",
			err:        domain.ErrNoHistory,
			wantStatus: http.StatusInternalServerError,
			wantError:  "no history data",
		},
		{
			name:       "data source",
			err:        fmt.Errorf("%w: fetch rounds: status 503", domain.ErrDataSource),
			wantStatus: http.StatusBadGateway,
			wantError:  "data source error",
			wantDetail: "data source error: fetch rounds: status 503",
		},
		{
			name:       "unexpected",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "prediction failed",
			wantDetail: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &stubPredictor{err: tt.err}, http.MethodGet, "/api/custom")
			assert.Equal(t, tt.wantStatus, rec.Code)

			body := decodeError(t, rec)
			assert.Equal(t, tt.wantError, body.Error)
			assert.Equal(t, tt.wantDetail, body.Detail)
		})
	}
}

func TestRejectsWrongMethod(t *testing.T) {
	rec := serve(t, &stubPredictor{}, http.MethodPost, "/api/custom")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
	assert.Equal(t, "method not allowed", decodeError(t, rec).Error)
}

func TestHealth(t *testing.T) {
	rec := serve(t, &stubPredictor{}, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Taixiu predictor ok"))

	rec = serve(t, &stubPredictor{}, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDebugHistory(t *testing.T) {
	predictor := &stubPredictor{rounds: []domain.Round{
		{Session: 7, Dice: [3]int{1, 2, 3}, Total: 6, Outcome: domain.OutcomeLow},
	}}

	rec := serve(t, predictor, http.MethodGet, "/debug/history")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50, predictor.historyLimit)
	assert.JSONEq(t, `[{"session": 7, "dice": [1, 2, 3], "total": 6, "result": "Xỉu"}]`, rec.Body.String())
}

func TestDebugPattern(t *testing.T) {
	predictor := &stubPredictor{patterns: engine.PatternTable{
		3: {"TTX": {High: 2, Low: 1}},
	}}

	rec := serve(t, predictor, http.MethodGet, "/debug/pattern")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"3": {"TTX": {"T": 2, "X": 1}}}`, rec.Body.String())
}

func TestRequestIDIsGeneratedOrEchoed(t *testing.T) {
	rec := serve(t, &stubPredictor{}, http.MethodGet, "/")
	_, err := uuid.Parse(rec.Header().Get(requestIDHeader))
	assert.NoError(t, err)

	handler := NewHandler(&stubPredictor{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "req-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(requestIDHeader))
}

func TestRecoversPanics(t *testing.T) {
	rec := serve(t, &stubPredictor{panics: true}, http.MethodGet, "/api/custom")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decodeError(t, rec).Error)
}

func TestServerServesAndShutsDown(t *testing.T) {
	server, err := Listen("127.0.0.1:0", NewHandler(&stubPredictor{}, nil), 0)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- server.Serve() }()

	resp, err := http.Get("http://" + server.Addr() + "/")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))
	assert.NoError(t, <-done)
}
