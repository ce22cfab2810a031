package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/travelplanner/config"
	"github.com/Domenick1991/travelplanner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFlights struct{}

func (stubFlights) Search(context.Context, domain.FlightSearchParams) ([]domain.EnrichedOffer, error) {
	return []domain.EnrichedOffer{}, nil
}

func testHandler() http.Handler {
	cfg := config.HTTPConfig{
		Address:     ":0",
		CORSOrigins: []string{"http://localhost:5173"},
		UserHeader:  "X-User-ID",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(cfg, logger, Services{Flights: stubFlights{}})
}

func TestNewHandler_Routes(t *testing.T) {
	handler := testHandler()

	tests := []struct {
		name   string
		method string
		path   string
		code   int
	}{
		{"health", "GET", "/healthz", http.StatusOK},
		{"public search", "GET", "/api/flights/search?origin=SYD", http.StatusOK},
		{"bookings need user", "GET", "/api/bookings", http.StatusUnauthorized},
		{"wishlist needs user", "POST", "/api/wishlist", http.StatusUnauthorized},
		{"plans need user", "DELETE", "/api/plans/x", http.StatusUnauthorized},
		{"swagger doc", "GET", "/swagger/doc.json", http.StatusOK},
		{"unknown", "GET", "/nope", http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestNewHandler_CORSPreflight(t *testing.T) {
	handler := testHandler()

	req := httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "X-User-ID")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: "127.0.0.1:0", UserHeader: "X-User-ID"}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg, logger, Services{}) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * shutdownTimeout):
		t.Fatal("server did not stop")
	}
}
