// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/danielhkuo/quickly-rate/models"
	"github.com/danielhkuo/quickly-rate/remote"
	"github.com/danielhkuo/quickly-rate/testutil"
)

func TestValidate_Success(t *testing.T) {
	svc := testutil.NewFakeService(t, models.Sample{ID: 1})
	sess := &Session{ProjectID: testutil.TestProjectID}
	m := NewManager(sess, NewRemoteSource(svc.Client(sess.ProjectID)), zap.NewNop())

	assert.Equal(t, "UNKNOWN", sess.DisplayID())
	require.NoError(t, m.Validate(context.Background()))
	assert.True(t, sess.Validated)
	assert.Equal(t, testutil.TestProjectID[:8], sess.DisplayID())
}

func TestValidate_MalformedProjectMakesNoCalls(t *testing.T) {
	for _, id := range []string{"", "abc", "zz" + testutil.TestProjectID[2:]} {
		svc := testutil.NewFakeService(t)
		sess := &Session{ProjectID: id}
		m := NewManager(sess, NewLocalSource(svc.Client(id), NewRand(1, 1), zap.NewNop()), zap.NewNop())

		err := m.Validate(context.Background())
		assert.ErrorIs(t, err, ErrUnknownStudy, "id %q", id)
		assert.Empty(t, svc.Requests(), "id %q", id)
		assert.Equal(t, "UNKNOWN", sess.DisplayID())
	}
}

func TestValidate_UnknownStudyStopsCalls(t *testing.T) {
	svc := testutil.NewFakeService(t)
	unknown := "ab" + testutil.TestProjectID[2:]
	sess := &Session{ProjectID: unknown}
	m := NewManager(sess, NewLocalSource(svc.Client(unknown), NewRand(1, 1), zap.NewNop()), zap.NewNop())

	require.ErrorIs(t, m.Validate(context.Background()), ErrUnknownStudy)
	calls := len(svc.Requests())
	assert.Equal(t, 1, calls)

	// a second attempt is refused without touching the network
	assert.ErrorIs(t, m.Validate(context.Background()), ErrUnknownStudy)
	assert.Len(t, svc.Requests(), calls)
	assert.False(t, sess.Validated)
}

func TestValidate_TransientCanRetry(t *testing.T) {
	svc := testutil.NewFakeService(t, models.Sample{ID: 1})
	svc.FailNext("", http.StatusServiceUnavailable, 1)
	sess := &Session{ProjectID: testutil.TestProjectID}
	m := NewManager(sess, NewRemoteSource(svc.Client(sess.ProjectID)), zap.NewNop())

	err := m.Validate(context.Background())
	var te *TransientError
	require.ErrorAs(t, err, &te)
	assert.NotErrorIs(t, err, ErrUnknownStudy)
	assert.False(t, sess.Validated)

	require.NoError(t, m.Validate(context.Background()))
	assert.True(t, sess.Validated)
}

func TestValidate_TimeoutIsTransient(t *testing.T) {
	svc := testutil.NewFakeService(t, models.Sample{ID: 1})
	svc.SetDelay(time.Second)
	sess := &Session{ProjectID: testutil.TestProjectID}
	client := remote.New(svc.URL(), sess.ProjectID, &http.Client{Timeout: 50 * time.Millisecond})
	m := NewManager(sess, NewRemoteSource(client), zap.NewNop())

	err := m.Validate(context.Background())
	var te *TransientError
	require.ErrorAs(t, err, &te)
	assert.False(t, sess.Validated)

	svc.SetDelay(0)
	require.NoError(t, m.Validate(context.Background()))
}

func TestValidate_NotFoundProbeDoesNotValidate(t *testing.T) {
	svc := testutil.NewFakeService(t, models.Sample{ID: 1})
	svc.FailNext("/project/get_sample", http.StatusNotFound, 1)
	sess := &Session{ProjectID: testutil.TestProjectID}
	m := NewManager(sess, NewRemoteSource(svc.Client(sess.ProjectID)), zap.NewNop())

	require.ErrorIs(t, m.Validate(context.Background()), ErrUnknownStudy)
	assert.False(t, sess.Validated)
	assert.Equal(t, "UNKNOWN", sess.DisplayID())

	assert.ErrorIs(t, m.Validate(context.Background()), ErrUnknownStudy)
	assert.Len(t, svc.Requests(), 1)
}
