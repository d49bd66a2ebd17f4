package httpsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bnema/taixiu-predictor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchDecodesRoundList(t *testing.T) {
	t.Parallel()

	server := newServer(t, http.StatusOK, `[
		{"session": 2001, "dice": [6, 5, 4], "total": 15, "result": "Tài"},
		{"session": "2000", "dice": [1, 2, 3], "total": 6},
		"garbage"
	]`)
	source := Source{URL: server.URL, HTTPClient: server.Client()}

	rows, err := source.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	rounds, err := domain.NormalizeRounds(rows)
	require.NoError(t, err)
	require.Len(t, rounds, 2)
	assert.Equal(t, domain.SessionID(2000), rounds[0].Session)
	assert.Equal(t, domain.OutcomeLow, rounds[0].Outcome)
	assert.Equal(t, domain.Round{Session: 2001, Dice: [3]int{6, 5, 4}, Total: 15, Outcome: domain.OutcomeHigh}, rounds[1])
}

func TestFetchRejectsBadPayloads(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want error
	}{
		{name: "object instead of list", body: `{"data": []}`, want: domain.ErrMalformedPayload},
		{name: "empty list", body: `[]`, want: domain.ErrEmptyBatch},
		{name: "invalid json", body: `[{"session": `, want: domain.ErrMalformedPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newServer(t, http.StatusOK, tt.body)
			_, err := Source{URL: server.URL, HTTPClient: server.Client()}.Fetch(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFetchReportsNon2xx(t *testing.T) {
	t.Parallel()

	server := newServer(t, http.StatusServiceUnavailable, `{"error":"down"}`)
	_, err := Source{URL: server.URL, HTTPClient: server.Client()}.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestFetchTimesOutWithoutCallerDeadline(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	t.Cleanup(server.Close)

	source := Source{URL: server.URL, HTTPClient: server.Client(), RequestTimeout: 20 * time.Millisecond}
	_, err := source.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request history")
}

func TestFetchValidatesURL(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "ftp://example.com/history", "http://"} {
		_, err := Source{URL: raw}.Fetch(context.Background())
		assert.Error(t, err, raw)
	}
}
