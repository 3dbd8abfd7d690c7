// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// recordingTransport captures the last request and answers with a fixed status
type recordingTransport struct {
	last   *http.Request
	status int
	err    error
}

func (rt *recordingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	rt.last = r
	if rt.err != nil {
		return nil, rt.err
	}
	return &http.Response{StatusCode: rt.status, Body: http.NoBody, Request: r}, nil
}

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "http://service.test/project/get_sample", nil)
	require.NoError(t, err)
	return req
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}

	base := &recordingTransport{status: http.StatusOK}
	rt := Chain(base, mark("first"), mark("second"), mark("third"))

	_, err := rt.RoundTrip(newRequest(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, order)
	assert.NotNil(t, base.last)
}

func TestWithRequestID(t *testing.T) {
	base := &recordingTransport{status: http.StatusOK}
	rt := Chain(base, WithRequestID())

	_, err := rt.RoundTrip(newRequest(t))
	require.NoError(t, err)
	first := base.last.Header.Get("X-Request-ID")

	_, err = rt.RoundTrip(newRequest(t))
	require.NoError(t, err)
	second := base.last.Header.Get("X-Request-ID")

	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
	assert.Equal(t, second, RequestIDFromContext(base.last.Context()))
}

func TestWithLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)

	base := &recordingTransport{status: http.StatusTeapot}
	rt := Chain(base, WithRequestID(), WithLogging(log))

	resp, err := rt.RoundTrip(newRequest(t))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/project/get_sample", fields["path"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestWithLogging_TransportError(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	base := &recordingTransport{err: errors.New("connection refused")}
	rt := Chain(base, WithLogging(zap.New(core)))

	_, err := rt.RoundTrip(newRequest(t))
	assert.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("request failed").Len())
}

func TestWithTracing_PassesThrough(t *testing.T) {
	base := &recordingTransport{status: http.StatusInternalServerError}
	rt := Chain(base, WithTracing("test"))

	resp, err := rt.RoundTrip(newRequest(t))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	base.err = errors.New("boom")
	_, err = rt.RoundTrip(newRequest(t))
	assert.Error(t, err)
}
