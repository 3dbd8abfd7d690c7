// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/danielhkuo/quickly-rate/auth"
	"github.com/danielhkuo/quickly-rate/models"
)

// Service is the part of the rating service a participant session uses.
// *remote.Client implements it.
type Service interface {
	GetSample(ctx context.Context) (models.Sample, error)
	GetSamples(ctx context.Context) ([]models.Sample, error)
	GetMyRatings(ctx context.Context) ([]models.MyRating, error)
	NewRating(ctx context.Context, req models.NewRatingRequest) error
}

// Session identifies one participant run against one study
type Session struct {
	ProjectID string
	Validated bool
}

// DisplayID is the label shown to the participant
func (s *Session) DisplayID() string {
	if !s.Validated {
		return "UNKNOWN"
	}
	return auth.DisplayID(s.ProjectID)
}

// Manager validates the session against the service before any sample
// is shown. Once the study is rejected it makes no further calls.
type Manager struct {
	session *Session
	source  Source
	log     *zap.Logger
	invalid bool
}

func NewManager(session *Session, source Source, log *zap.Logger) *Manager {
	return &Manager{session: session, source: source, log: log}
}

func (m *Manager) Session() *Session {
	return m.session
}

func (m *Manager) Source() Source {
	return m.source
}

// Validate probes the service through the source's Init. It returns nil,
// an error matching ErrUnknownStudy, or a *TransientError.
func (m *Manager) Validate(ctx context.Context) error {
	if m.invalid {
		return ErrUnknownStudy
	}

	if err := auth.ValidateToken(m.session.ProjectID); err != nil {
		m.invalid = true
		m.log.Info("rejected malformed project id", zap.String("project", auth.DisplayID(m.session.ProjectID)))
		return fmt.Errorf("%w: %v", ErrUnknownStudy, err)
	}

	err := m.source.Init(ctx)
	switch {
	case err == nil:
		m.session.Validated = true
		m.log.Info("session validated", zap.String("project", auth.DisplayID(m.session.ProjectID)))
		return nil
	case errors.Is(err, ErrUnknownStudy):
		m.invalid = true
		m.log.Info("unknown study", zap.String("project", auth.DisplayID(m.session.ProjectID)))
		return err
	default:
		m.log.Warn("session validation failed", zap.Error(err))
		var te *TransientError
		if errors.As(err, &te) {
			return err
		}
		return &TransientError{Op: "validate", Err: err}
	}
}
