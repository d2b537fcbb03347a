package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Addr:                 "127.0.0.1:0",
		BasePath:             "/api/",
		SessionSecret:        "secret",
		SessionTTL:           time.Hour,
		SessionSweepInterval: time.Minute,
		TokenLifetime:        time.Hour,
		DefaultGame:          "easy",
		MaxCells:             10000,
	}
}

func TestHandlerBasePath(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := New(logger, testConfig())
	require.NoError(t, err)

	h := a.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/presets", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/presets", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/game", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestNewInvalidDefaultGame(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultGame = "1:1:1"
	_, err := New(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)
	assert.Error(t, err)
}

func TestStartStopsOnCancel(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := New(logger, testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- a.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
