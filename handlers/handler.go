// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/danielhkuo/quickly-rate/models"
	"github.com/danielhkuo/quickly-rate/session"
)

// ErrUsage marks a command invoked with the wrong arguments
var ErrUsage = errors.New("usage")

// Client is everything the commands need from the rating service.
// *remote.Client implements it.
type Client interface {
	session.Service
	GetRatings(ctx context.Context) ([]models.Rating, error)
	NewProject(ctx context.Context, adminSecret string) (models.NewProjectResponse, error)
	NewSample(ctx context.Context, adminToken string, req models.NewSampleRequest) error
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrUsage}, args...)...)
}

// requireProject reports a missing or malformed project id before any
// call is made
func requireProject(projectID string) error {
	if projectID == "" {
		return usageError("a project id is required (use -u, -project or PROJECT_ID)")
	}
	return nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

var heading = color.New(color.Bold)

// shorten cuts a text to max runes for table cells, on one line
func shorten(text string, max int) string {
	r := []rune(text)
	for i, c := range r {
		if c == '\n' || c == '\r' || c == '\t' {
			r[i] = ' '
		}
	}
	if len(r) <= max {
		return string(r)
	}
	return string(r[:max-1]) + "…"
}
