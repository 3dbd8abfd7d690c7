// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/danielhkuo/quickly-rate/cliparse"
	"github.com/danielhkuo/quickly-rate/models"
)

type ResultsHandler struct {
	client Client
	cfg    cliparse.Config
	log    *zap.Logger
	out    io.Writer
}

func NewResultsHandler(client Client, cfg cliparse.Config, log *zap.Logger, out io.Writer) *ResultsHandler {
	return &ResultsHandler{client: client, cfg: cfg, log: log, out: out}
}

// Results prints the source ranking and per-sample vote counts
func (h *ResultsHandler) Results(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return usageError("results takes no arguments")
	}
	if err := requireProject(h.cfg.ProjectID); err != nil {
		return err
	}

	samples, err := h.client.GetSamples(ctx)
	if err != nil {
		return err
	}
	ratings, err := h.client.GetRatings(ctx)
	if err != nil {
		return err
	}

	summary := ComputeResults(h.cfg.ProjectID, samples, ratings)
	if summary.OrphanRating > 0 {
		h.log.Warn("ratings without a matching sample", zap.Int("count", summary.OrphanRating))
	}

	return h.print(summary)
}

func (h *ResultsHandler) print(s models.ResultSummary) error {
	fmt.Fprintf(h.out, "%s samples, %s ratings from %s raters\n",
		humanize.Comma(int64(s.SampleCount)),
		humanize.Comma(int64(s.RatingCount)),
		humanize.Comma(int64(s.RaterCount)),
	)
	if s.OrphanRating > 0 {
		fmt.Fprintf(h.out, "%s ratings could not be matched to a sample\n", humanize.Comma(int64(s.OrphanRating)))
	}

	fmt.Fprintln(h.out)
	heading.Fprintln(h.out, "Sources")
	tw := newTable(h.out)
	fmt.Fprintln(tw, "RANK\tSOURCE\tWINS\tCOMPARISONS\tWIN SHARE\tPREFERENCE")
	for _, src := range s.Sources {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%+.2f\n",
			humanize.Ordinal(src.Rank), src.Source, src.Wins, src.Comparisons,
			percent(src.WinShare, src.Comparisons), src.Preference)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(h.out)
	heading.Fprintln(h.out, "Samples")
	tw = newTable(h.out)
	fmt.Fprintln(tw, "SAMPLE\tTEXT 1\tTEXT 2")
	for _, t := range s.Samples {
		fmt.Fprintf(tw, "%d\t%d\t%d\n", t.SampleID, t.Text1Votes, t.Text2Votes)
	}
	return tw.Flush()
}

func percent(share float64, comparisons int) string {
	if comparisons == 0 {
		return "-"
	}
	return humanize.FormatFloat("#.#", share*100) + "%"
}
