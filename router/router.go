// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/danielhkuo/quickly-rate/cliparse"
	"github.com/danielhkuo/quickly-rate/handlers"
)

var ErrUnknownCommand = errors.New("unknown command")

// CommandFunc runs one command with its positional arguments
type CommandFunc func(ctx context.Context, args []string) error

type command struct {
	name    string
	usage   string
	summary string
	run     CommandFunc
}

// Router dispatches command names to handlers
type Router struct {
	commands map[string]command
	order    []string
	log      *zap.Logger
}

func New(log *zap.Logger) *Router {
	return &Router{commands: make(map[string]command), log: log}
}

// Handle registers a command. usage is the argument synopsis shown in help.
func (r *Router) Handle(name, usage, summary string, fn CommandFunc) {
	if _, exists := r.commands[name]; !exists {
		r.order = append(r.order, name)
	}
	r.commands[name] = command{name: name, usage: usage, summary: summary, run: fn}
}

// Dispatch runs the named command
func (r *Router) Dispatch(ctx context.Context, name string, args []string) error {
	cmd, ok := r.commands[name]
	if !ok {
		return fmt.Errorf("%w %q (run \"quickly-rate help\")", ErrUnknownCommand, name)
	}
	return r.wrap(cmd)(ctx, args)
}

// Usage writes the command list
func (r *Router) Usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: quickly-rate [flags] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, name := range r.order {
		cmd := r.commands[name]
		synopsis := cmd.name
		if cmd.usage != "" {
			synopsis += " " + cmd.usage
		}
		fmt.Fprintf(w, "  %-48s %s\n", synopsis, cmd.summary)
	}
}

// wrap adds a span and a log line around a command
func (r *Router) wrap(cmd command) CommandFunc {
	return func(ctx context.Context, args []string) error {
		ctx, span := otel.Tracer("quickly-rate").Start(ctx, "command "+cmd.name)
		defer span.End()
		span.SetAttributes(attribute.String("command", cmd.name), attribute.Int("args", len(args)))

		start := time.Now()
		err := cmd.run(ctx, args)
		duration := time.Since(start)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			r.log.Warn("command failed",
				zap.String("command", cmd.name),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
			return err
		}

		r.log.Info("command completed",
			zap.String("command", cmd.name),
			zap.Duration("duration", duration),
		)
		return nil
	}
}

func NewRouter(client handlers.Client, cfg cliparse.Config, log *zap.Logger, in io.Reader, out io.Writer) *Router {
	r := New(log)

	// Initialize handlers
	ratingHandler := handlers.NewRatingHandler(client, cfg, log, in, out)
	projectHandler := handlers.NewProjectHandler(client, cfg, log, out)
	resultsHandler := handlers.NewResultsHandler(client, cfg, log, out)
	exportHandler := handlers.NewExportHandler(client, cfg, log, out)

	// Participant
	r.Handle("rate", "", "Rate samples interactively (default)", ratingHandler.Rate)
	r.Handle("my-ratings", "", "List your ratings", projectHandler.MyRatings)

	// Study administration
	r.Handle("samples", "", "List all samples", projectHandler.Samples)
	r.Handle("ratings", "", "List all ratings", projectHandler.Ratings)
	r.Handle("results", "", "Rank sources by win share", resultsHandler.Results)
	r.Handle("export", "", "Export samples and ratings to SQLite or PostgreSQL", exportHandler.Export)
	r.Handle("new-project", "", "Create a project (needs the admin secret)", projectHandler.NewProject)
	r.Handle("add-sample", "<text1> <text2> [source1] [source2]", "Add a sample (needs the project admin token)", projectHandler.AddSample)

	r.Handle("help", "", "Show this help", func(ctx context.Context, args []string) error {
		r.Usage(out)
		return nil
	})

	return r
}
