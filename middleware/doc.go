// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP transport middleware for calls to the
rating service.

# Transport Chain

Outgoing calls to the rating service go through a chain of
http.RoundTripper decorators:

	client := &http.Client{
		Timeout: cfg.Timeout,
		Transport: middleware.Chain(nil,
			middleware.WithTracing("quickly-rate"),
			middleware.WithRequestID(),
			middleware.WithLogging(log),
		),
	}

The first middleware runs outermost.

  - WithTracing: one OpenTelemetry client span per call
  - WithRequestID: X-Request-ID header, also available via RequestIDFromContext
  - WithLogging: method, path, status and duration_ms to the zap logger
*/
package middleware
