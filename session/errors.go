// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/danielhkuo/quickly-rate/remote"
)

var (
	// ErrUnknownStudy means the project id is not recognised. Terminal.
	ErrUnknownStudy = errors.New("unknown study")

	// ErrExhausted means every sample has been rated. Not a failure.
	ErrExhausted = errors.New("no samples left to rate")
)

// TransientError is a network or server failure the user may retry
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// SubmissionError means a rating was not recorded. The sample stays
// current so the same choice can be submitted again.
type SubmissionError struct {
	SampleID int64
	Err      error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit rating for sample %d: %v", e.SampleID, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// classify converts adapter errors into the kinds the session loop acts on
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, remote.ErrUnauthorized):
		return fmt.Errorf("%w: %v", ErrUnknownStudy, err)
	case errors.Is(err, remote.ErrNoSample):
		return ErrExhausted
	default:
		return &TransientError{Op: op, Err: err}
	}
}

// notFound reports a 404, which the service also answers for a project
// it does not know
func notFound(err error) bool {
	var se *remote.StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}
