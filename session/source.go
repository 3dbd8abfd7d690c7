// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/danielhkuo/quickly-rate/models"
)

// Source yields the next sample to rate.
//
// Init is the validation probe and is safe to call again after a failure.
// Next returns ErrExhausted when nothing is left, an error matching
// ErrUnknownStudy, or a *TransientError.
type Source interface {
	Init(ctx context.Context) error
	Next(ctx context.Context) (models.Sample, error)
}

// Remaining is implemented by sources that know how many samples are left
type Remaining interface {
	Remaining() int
}

// RemoteSource asks the service for a random unrated sample on every call.
// The service is trusted to exclude rated samples.
type RemoteSource struct {
	svc Service

	// result of the Init probe, handed out by the first Next
	primed      *models.Sample
	primedEmpty bool
}

func NewRemoteSource(svc Service) *RemoteSource {
	return &RemoteSource{svc: svc}
}

func (s *RemoteSource) Init(ctx context.Context) error {
	s.primed, s.primedEmpty = nil, false

	sample, err := s.svc.GetSample(ctx)
	if notFound(err) {
		return fmt.Errorf("%w: %v", ErrUnknownStudy, err)
	}
	switch err = classify("get_sample", err); {
	case err == nil:
		s.primed = &sample
	case errors.Is(err, ErrExhausted):
		s.primedEmpty = true
	default:
		return err
	}
	return nil
}

func (s *RemoteSource) Next(ctx context.Context) (models.Sample, error) {
	if s.primed != nil {
		sample := *s.primed
		s.primed = nil
		return sample, nil
	}
	if s.primedEmpty {
		s.primedEmpty = false
		return models.Sample{}, ErrExhausted
	}

	sample, err := s.svc.GetSample(ctx)
	if err != nil {
		return models.Sample{}, classify("get_sample", err)
	}
	return sample, nil
}

// LocalSource fetches all samples and the participant's ratings once,
// then draws from a local Pool without further network calls.
type LocalSource struct {
	svc  Service
	rng  *rand.Rand
	log  *zap.Logger
	pool *Pool
}

func NewLocalSource(svc Service, rng *rand.Rand, log *zap.Logger) *LocalSource {
	return &LocalSource{svc: svc, rng: rng, log: log}
}

func (s *LocalSource) Init(ctx context.Context) error {
	samples, err := s.svc.GetSamples(ctx)
	if err != nil {
		return classify("get_samples", err)
	}

	rated, err := s.svc.GetMyRatings(ctx)
	if err != nil {
		return classify("get_my_ratings", err)
	}

	s.pool = NewPool(samples, rated, s.rng)
	s.log.Info("sample pool ready",
		zap.Int("candidates", len(samples)),
		zap.Int("rated", len(rated)),
		zap.Int("unrated", s.pool.Len()),
	)
	return nil
}

func (s *LocalSource) Next(ctx context.Context) (models.Sample, error) {
	if s.pool == nil {
		return models.Sample{}, &TransientError{Op: "draw", Err: errors.New("sample pool not loaded")}
	}

	sample, ok := s.pool.Draw()
	if !ok {
		return models.Sample{}, ErrExhausted
	}
	return sample, nil
}

func (s *LocalSource) Remaining() int {
	if s.pool == nil {
		return 0
	}
	return s.pool.Len()
}

// Pool exposes the loaded pool, nil before Init succeeds
func (s *LocalSource) Pool() *Pool {
	return s.pool
}
