// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for quickly-rate, a terminal client
for pairwise text rating studies.

A participant is given a study link whose fragment is the project id.
quickly-rate shows two texts at a time in random left/right order, records
which one the participant prefers, and moves on until every sample has
been rated.

# Rating

	quickly-rate -u "http://host:8080/#3f9a..."

Or with the service and project given separately:

	SERVER_URL=http://host:8080 PROJECT_ID=3f9a... quickly-rate rate

Keys: a or b to choose, r to retry after a network error, q to quit.

# Configuration

Every flag has an environment fallback, and a .env file in the working
directory is loaded first:

  - STUDY_URL (-u): study link; sets the server and project id
  - SERVER_URL (-s), PROJECT_ID (-project)
  - SAMPLE_STRATEGY (-strategy): remote (default) or local
  - REQUEST_TIMEOUT (-timeout): per-request timeout (default: 15s)
  - RATE_SEED (-seed): fixed seed for reproducible sessions
  - LOG_FILE (-log), DEBUG (-debug)
  - ADMIN_SECRET (-admin-secret), PROJECT_ADMIN_TOKEN (-admin-token)
  - DATABASE_URL (-d), DATABASE_TYPE (-t): export target

Set OTEL_ENABLED=true to send traces to OTEL_EXPORTER_OTLP_ENDPOINT.

# Architecture

  - session: rating session state machine, sample sources, submission
  - terminal: line-based rating screen
  - remote: HTTP client for the rating service
  - handlers: command implementations
  - router: command dispatch
  - middleware: request id, logging and tracing for outgoing requests
  - db: export schema for SQLite and PostgreSQL
  - models: wire and result types
  - auth: study links, tokens, request ids
  - cliparse: configuration parsing
  - logger, tracer: zap logging and OpenTelemetry setup

See package documentation for each component.
*/
package main
