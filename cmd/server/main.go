package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-engine/internal/app"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var configPath string

func init() {
	const usage = "config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
}

func setupLogging(cfg *config.Config) (*slog.Logger, error) {
	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, nil)
	logLevel := logrus.InfoLevel
	if cfg.Development {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level: slog.LevelDebug,
		})
		logLevel = logrus.DebugLevel
	}

	mines.Log.SetLevel(logLevel)
	mines.Log.SetFormatter(&logrus.TextFormatter{ForceColors: cfg.Development})

	if cfg.LogFile != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   cfg.LogFile,
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     28,
			Level:      logLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return nil, err
		}
		mines.Log.AddHook(hook)
	}

	return slog.New(handler), nil
}

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger, err := setupLogging(cfg)
	if err != nil {
		slog.Error("failed to set up logging", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("starting up", slog.Bool("development", cfg.Development))
	logger.Debug("config", slog.Any("config", cfg.Fields()))

	a, err := app.New(logger, cfg)
	if err != nil {
		logger.Error("failed to create app", slog.Any("error", err))
		os.Exit(1)
	}

	if err := a.Start(ctx); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
