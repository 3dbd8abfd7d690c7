// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/danielhkuo/quickly-rate/auth"
	"github.com/danielhkuo/quickly-rate/cliparse"
	"github.com/danielhkuo/quickly-rate/models"
)

// cellWidth bounds sample texts in listings
const cellWidth = 40

// ProjectHandler covers project administration and listings
type ProjectHandler struct {
	client Client
	cfg    cliparse.Config
	log    *zap.Logger
	out    io.Writer
}

func NewProjectHandler(client Client, cfg cliparse.Config, log *zap.Logger, out io.Writer) *ProjectHandler {
	return &ProjectHandler{client: client, cfg: cfg, log: log, out: out}
}

// Samples lists every sample of the project
func (h *ProjectHandler) Samples(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return usageError("samples takes no arguments")
	}
	if err := requireProject(h.cfg.ProjectID); err != nil {
		return err
	}

	samples, err := h.client.GetSamples(ctx)
	if err != nil {
		return err
	}

	tw := newTable(h.out)
	fmt.Fprintln(tw, "ID\tTEXT 1\tTEXT 2\tSOURCE 1\tSOURCE 2")
	for _, s := range samples {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", s.ID, shorten(s.Text1, cellWidth), shorten(s.Text2, cellWidth), s.Source1, s.Source2)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(h.out, "%s samples\n", humanize.Comma(int64(len(samples))))
	return nil
}

// Ratings lists every rating of the project
func (h *ProjectHandler) Ratings(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return usageError("ratings takes no arguments")
	}
	if err := requireProject(h.cfg.ProjectID); err != nil {
		return err
	}

	ratings, err := h.client.GetRatings(ctx)
	if err != nil {
		return err
	}

	tw := newTable(h.out)
	fmt.Fprintln(tw, "ID\tSAMPLE\tRATER\tCHOICE")
	for _, r := range ratings {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", r.ID, r.SampleID, auth.DisplayID(r.IP), choiceLabel(r.Rating))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(h.out, "%s ratings\n", humanize.Comma(int64(len(ratings))))
	return nil
}

// MyRatings lists the ratings the service attributes to this machine
func (h *ProjectHandler) MyRatings(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return usageError("my-ratings takes no arguments")
	}
	if err := requireProject(h.cfg.ProjectID); err != nil {
		return err
	}

	ratings, err := h.client.GetMyRatings(ctx)
	if err != nil {
		return err
	}

	tw := newTable(h.out)
	fmt.Fprintln(tw, "ID\tSAMPLE\tCHOICE")
	for _, r := range ratings {
		fmt.Fprintf(tw, "%d\t%d\t%s\n", r.ID, r.SampleID, choiceLabel(r.Rating))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(h.out, "You have rated %s samples\n", humanize.Comma(int64(len(ratings))))
	return nil
}

// NewProject creates a project and prints its study link and admin token
func (h *ProjectHandler) NewProject(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return usageError("new-project takes no arguments")
	}
	if h.cfg.AdminSecret == "" {
		return errors.New("admin secret required (use -admin-secret or ADMIN_SECRET env)")
	}

	resp, err := h.client.NewProject(ctx, h.cfg.AdminSecret)
	if err != nil {
		return err
	}

	h.log.Info("project created", zap.String("project", auth.DisplayID(resp.ProjectID)))

	fmt.Fprintf(h.out, "Project URL: %s/#%s\n", h.cfg.ServerURL, resp.ProjectID)
	fmt.Fprintf(h.out, "Project Admin Token: %s\n", resp.AdminToken)
	return nil
}

// AddSample adds one text pair: add-sample <text1> <text2> [source1] [source2]
func (h *ProjectHandler) AddSample(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 4 {
		return usageError("add-sample <text1> <text2> [source1] [source2]")
	}
	if err := requireProject(h.cfg.ProjectID); err != nil {
		return err
	}
	if h.cfg.AdminToken == "" {
		return errors.New("project admin token required (use -admin-token or PROJECT_ADMIN_TOKEN env)")
	}

	req := models.NewSampleRequest{
		Project: h.cfg.ProjectID,
		Text1:   args[0],
		Text2:   args[1],
	}
	if len(args) > 2 {
		req.Source1 = args[2]
	}
	if len(args) > 3 {
		req.Source2 = args[3]
	}

	if err := h.client.NewSample(ctx, h.cfg.AdminToken, req); err != nil {
		return err
	}

	h.log.Info("sample added", zap.String("project", auth.DisplayID(h.cfg.ProjectID)))
	fmt.Fprintln(h.out, "Sample added")
	return nil
}

func choiceLabel(rating int) string {
	switch rating {
	case models.RatingText1:
		return "text 1"
	case models.RatingText2:
		return "text 2"
	}
	return fmt.Sprintf("invalid (%d)", rating)
}
