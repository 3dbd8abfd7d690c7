// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/danielhkuo/quickly-rate/models"
	"github.com/danielhkuo/quickly-rate/testutil"
)

func TestSubmit(t *testing.T) {
	svc := testutil.NewFakeService(t, models.Sample{ID: 1, Text1: "X", Text2: "Y"})
	s := NewSubmitter(svc.Client(testutil.TestProjectID), zap.NewNop())

	require.NoError(t, s.Submit(context.Background(), 1, VariantB))

	ratings := svc.Ratings()
	require.Len(t, ratings, 1)
	assert.Equal(t, int64(1), ratings[0].SampleID)
	assert.Equal(t, models.RatingText2, ratings[0].Rating)
}

func TestSubmit_Failures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		unknown   bool
		transient bool
	}{
		{"server error", http.StatusInternalServerError, false, true},
		{"bad gateway", http.StatusBadGateway, false, true},
		{"unauthorized", http.StatusUnauthorized, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService(t, models.Sample{ID: 3})
			svc.FailNext("/project/new_rating", tt.status, 1)
			s := NewSubmitter(svc.Client(testutil.TestProjectID), zap.NewNop())

			err := s.Submit(context.Background(), 3, VariantA)

			var se *SubmissionError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, int64(3), se.SampleID)
			assert.Equal(t, tt.unknown, errors.Is(err, ErrUnknownStudy))
			var te *TransientError
			assert.Equal(t, tt.transient, errors.As(err, &te))
			assert.Empty(t, svc.Ratings())
		})
	}
}
