package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bnema/taixiu-predictor/internal/domain"
	"github.com/bnema/taixiu-predictor/internal/engine"
)

const (
	debugHistoryLimit = 50
	healthText        = "Taixiu predictor ok. Use /api/custom"
)

// Predictor is the application surface the HTTP API serves.
type Predictor interface {
	Predict(ctx context.Context) (domain.Prediction, error)
	History(limit int) []domain.Round
	Patterns() engine.PatternTable
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// NewHandler builds the routed and instrumented API handler.
func NewHandler(predictor Predictor, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := handlers{predictor: predictor, logger: logger}

	mux := http.NewServeMux()
	mux.Handle("/api/custom", Chain(http.HandlerFunc(h.predict), RequireMethod(http.MethodGet)))
	mux.Handle("/debug/history", Chain(http.HandlerFunc(h.history), RequireMethod(http.MethodGet)))
	mux.Handle("/debug/pattern", Chain(http.HandlerFunc(h.patterns), RequireMethod(http.MethodGet)))
	mux.Handle("/{$}", Chain(http.HandlerFunc(h.health), RequireMethod(http.MethodGet)))

	return Chain(mux, RequestID(), LogRequests(logger), RecoverPanic(logger))
}

type handlers struct {
	predictor Predictor
	logger    *slog.Logger
}

func (h handlers) predict(w http.ResponseWriter, r *http.Request) {
	prediction, err := h.predictor.Predict(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoHistory):
			writeError(w, http.StatusInternalServerError, "no history data", "")
		case errors.Is(err, domain.ErrDataSource):
			writeError(w, http.StatusBadGateway, "data source error", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "prediction failed", err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, prediction)
}

func (h handlers) history(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.predictor.History(debugHistoryLimit))
}

func (h handlers) patterns(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.predictor.Patterns())
}

func (h handlers) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(healthText))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, detail string) {
	writeJSON(w, status, errorResponse{Error: message, Detail: detail})
}
