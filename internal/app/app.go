package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

type App struct {
	logger *slog.Logger
	config *config.Config
	router *http.ServeMux
	store  *session.Store
	tokens *config.Tokens
	ws     *config.WebSocket
}

func New(logger *slog.Logger, cfg *config.Config) (*App, error) {
	tokens, err := config.NewTokens(cfg.SessionSecret, cfg.TokenLifetime)
	if err != nil {
		return nil, err
	}

	ws, err := config.NewWebSocket(cfg.CorsOrigins)
	if err != nil {
		return nil, err
	}

	app := &App{
		logger: logger,
		config: cfg,
		router: http.NewServeMux(),
		store:  session.NewStore(logger, cfg.SessionTTL, cfg.MaxCells),
		tokens: tokens,
		ws:     ws,
	}

	if err := app.loadRoutes(); err != nil {
		return nil, err
	}

	return app, nil
}

// Handler is the router wrapped in the middleware chain and mounted under
// the configured base path.
func (a *App) Handler() http.Handler {
	var h http.Handler = a.router
	if base := strings.TrimSuffix(a.config.BasePath, "/"); base != "" {
		mux := http.NewServeMux()
		mux.Handle(base+"/", http.StripPrefix(base, a.router))
		h = mux
	}
	return middleware.Wrap(
		h,
		middleware.Auth(a.logger, a.tokens),
		middleware.Cors(a.config.CorsOrigins),
		middleware.Logging(a.logger),
	)
}

func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              a.config.Addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.logger.Info("server listening", slog.String("addr", a.config.Addr))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("unable to listen and serve: %w", err)
	})
	g.Go(func() error {
		return a.store.Run(gCtx, a.config.SessionSweepInterval)
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
