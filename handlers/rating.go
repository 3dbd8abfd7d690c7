// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/danielhkuo/quickly-rate/cliparse"
	"github.com/danielhkuo/quickly-rate/session"
	"github.com/danielhkuo/quickly-rate/terminal"
)

// Random stream ids; the pool and the left/right coin never share one
const (
	poolStream = 1
	coinStream = 2
)

type RatingHandler struct {
	client session.Service
	cfg    cliparse.Config
	log    *zap.Logger
	in     io.Reader
	out    io.Writer
}

func NewRatingHandler(client session.Service, cfg cliparse.Config, log *zap.Logger, in io.Reader, out io.Writer) *RatingHandler {
	return &RatingHandler{client: client, cfg: cfg, log: log, in: in, out: out}
}

// Rate runs an interactive rating session until every sample is rated,
// the participant quits, or the study is rejected
func (h *RatingHandler) Rate(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return usageError("rate takes no arguments")
	}

	var src session.Source
	switch h.cfg.Strategy {
	case cliparse.StrategyLocal:
		src = session.NewLocalSource(h.client, session.NewRand(h.cfg.Seed, poolStream), h.log)
	default:
		src = session.NewRemoteSource(h.client)
	}

	sess := &session.Session{ProjectID: h.cfg.ProjectID}
	manager := session.NewManager(sess, src, h.log)
	randomizer := session.NewRandomizer(session.NewRand(h.cfg.Seed, coinStream))
	submitter := session.NewSubmitter(h.client, h.log)
	ui := terminal.New(h.in, h.out)
	defer ui.Close()

	h.log.Info("rating session started",
		zap.String("strategy", h.cfg.Strategy),
		zap.Int64("seed", h.cfg.Seed),
	)

	loop := session.NewLoop(manager, randomizer, submitter, ui, h.log)
	state, err := loop.Run(ctx)

	h.log.Info("rating session ended",
		zap.Stringer("state", state),
		zap.Int("rated", loop.Machine().Rated),
		zap.Error(err),
	)

	if err != nil {
		return err
	}
	if state == session.StateInvalid {
		return session.ErrUnknownStudy
	}
	return nil
}
