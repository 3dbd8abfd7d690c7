// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/danielhkuo/quickly-rate/models"
)

// Submitter posts ratings. It never advances the session; the loop draws
// the next sample only after Submit returns nil.
type Submitter struct {
	svc Service
	log *zap.Logger
}

func NewSubmitter(svc Service, log *zap.Logger) *Submitter {
	return &Submitter{svc: svc, log: log}
}

// Submit records the choice for a sample. Submitting the same sample and
// variant again after a failure is safe from the client's side.
func (s *Submitter) Submit(ctx context.Context, sampleID int64, variant Variant) error {
	err := s.svc.NewRating(ctx, models.NewRatingRequest{
		SampleID: sampleID,
		Rating:   int(variant),
	})
	if err != nil {
		s.log.Warn("rating not recorded",
			zap.Int64("sample_id", sampleID),
			zap.Stringer("variant", variant),
			zap.Error(err),
		)
		return &SubmissionError{SampleID: sampleID, Err: classify("new_rating", err)}
	}

	s.log.Info("rating recorded", zap.Int64("sample_id", sampleID), zap.Stringer("variant", variant))
	return nil
}
