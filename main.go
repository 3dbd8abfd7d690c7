// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/danielhkuo/quickly-rate/cliparse"
	"github.com/danielhkuo/quickly-rate/handlers"
	"github.com/danielhkuo/quickly-rate/logger"
	"github.com/danielhkuo/quickly-rate/middleware"
	"github.com/danielhkuo/quickly-rate/remote"
	"github.com/danielhkuo/quickly-rate/router"
	"github.com/danielhkuo/quickly-rate/tracer"
)

const (
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	errOut := color.New(color.FgRed)

	if err := cliparse.LoadEnvFile(".env"); err != nil {
		errOut.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		return exitError
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) || slices.Contains(os.Args[1:], "help") {
			usage()
			return 0
		}
		errOut.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		return exitUsage
	}

	log := logger.New(cfg.LogFile, cfg.Debug)
	defer log.Sync()

	// signal.NotifyContext cancels ctx on Ctrl-C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown := tracer.Init(ctx, log)
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: middleware.Chain(http.DefaultTransport,
			middleware.WithRequestID(),
			middleware.WithTracing("quickly-rate"),
			middleware.WithLogging(log),
		),
	}
	client := remote.New(cfg.ServerURL, cfg.ProjectID, httpClient)

	log.Info("starting",
		zap.String("command", cfg.Command),
		zap.String("server", cfg.ServerURL),
		zap.String("strategy", cfg.Strategy),
		zap.Duration("timeout", cfg.Timeout),
	)

	r := router.NewRouter(client, cfg, log, os.Stdin, os.Stdout)
	err = r.Dispatch(ctx, cfg.Command, cfg.Args)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		log.Info("interrupted")
		return exitError
	case errors.Is(err, handlers.ErrUsage), errors.Is(err, router.ErrUnknownCommand):
		errOut.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	default:
		errOut.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
}

func usage() {
	router.NewRouter(nil, cliparse.Config{}, zap.NewNop(), nil, nil).Usage(os.Stdout)
	os.Stdout.WriteString(`
Flags:
  -u string             Study URL (http://host/#project_id)       [STUDY_URL]
  -s string             Service base URL                          [SERVER_URL]
  -project string       Project id                                [PROJECT_ID]
  -strategy string      Sample source: remote or local            [SAMPLE_STRATEGY]
  -timeout duration     Per-request timeout (default 15s)         [REQUEST_TIMEOUT]
  -seed int             Random seed, 0 for a random one           [RATE_SEED]
  -log string           Log file (default quickly-rate.log)       [LOG_FILE]
  -debug                Debug logging                             [DEBUG]
  -admin-secret string  Service admin secret                      [ADMIN_SECRET]
  -admin-token string   Project admin token                       [PROJECT_ADMIN_TOKEN]
  -d string             Export database URL or file               [DATABASE_URL]
  -t string             Export database type: sqlite or postgres  [DATABASE_TYPE]
`)
}
