// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/danielhkuo/quickly-rate/auth"
	"github.com/danielhkuo/quickly-rate/cliparse"
	"github.com/danielhkuo/quickly-rate/db"
)

type ExportHandler struct {
	client Client
	cfg    cliparse.Config
	log    *zap.Logger
	out    io.Writer
	now    func() time.Time
}

func NewExportHandler(client Client, cfg cliparse.Config, log *zap.Logger, out io.Writer) *ExportHandler {
	return &ExportHandler{client: client, cfg: cfg, log: log, out: out, now: time.Now}
}

// Export copies the project's samples and ratings into the configured
// database
func (h *ExportHandler) Export(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return usageError("export takes no arguments")
	}
	if err := requireProject(h.cfg.ProjectID); err != nil {
		return err
	}

	// Fetch first so an unreachable service leaves the database untouched
	samples, err := h.client.GetSamples(ctx)
	if err != nil {
		return err
	}
	ratings, err := h.client.GetRatings(ctx)
	if err != nil {
		return err
	}

	conn, err := db.Open(ctx, h.cfg.DatabaseType, h.cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.CreateSchema(ctx, conn); err != nil {
		return err
	}

	previous, err := db.ListExportRuns(ctx, conn, h.cfg.ProjectID)
	if err != nil {
		return err
	}

	run, err := db.WriteExport(ctx, conn, h.cfg.ProjectID, samples, ratings, h.now())
	if err != nil {
		return err
	}

	h.log.Info("export written",
		zap.String("export_id", run.ID),
		zap.String("project", auth.DisplayID(run.ProjectID)),
		zap.String("database_type", h.cfg.DatabaseType),
		zap.Int("samples", run.SampleCount),
		zap.Int("ratings", run.RatingCount),
	)

	fmt.Fprintf(h.out, "Exported %s samples and %s ratings to %s (export %s)\n",
		humanize.Comma(int64(run.SampleCount)),
		humanize.Comma(int64(run.RatingCount)),
		h.cfg.DatabaseType,
		run.ID,
	)
	if len(previous) > 0 {
		last := previous[0]
		fmt.Fprintf(h.out, "Previous export %s: %s ratings\n",
			humanize.RelTime(last.ExportedAt, run.ExportedAt, "earlier", "later"),
			humanize.Comma(int64(last.RatingCount)),
		)
	}
	return nil
}
