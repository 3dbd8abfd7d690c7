// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Call LoadEnvFile(".env") first to pick up a local .env file.

# CLI Flags

	-u              Study URL (http://host/#project_id)
	-s              Service base URL
	-project        Project id
	-strategy       remote (default) or local
	-timeout        Per-request timeout (default 15s)
	-seed           Random seed, 0 for time based
	-log            Log file (default quickly-rate.log)
	-debug          Debug logging
	-admin-secret   Service admin secret
	-admin-token    Project admin token
	-d              Export database URL or file
	-t              Export database type (sqlite or postgres)

# Environment Variables

Flags fall back to environment variables:

	STUDY_URL           → -u
	SERVER_URL          → -s
	PROJECT_ID          → -project
	SAMPLE_STRATEGY     → -strategy
	REQUEST_TIMEOUT     → -timeout
	RATE_SEED           → -seed
	LOG_FILE            → -log
	DEBUG               → -debug
	ADMIN_SECRET        → -admin-secret
	PROJECT_ADMIN_TOKEN → -admin-token
	DATABASE_URL        → -d
	DATABASE_TYPE       → -t

CLI flags take precedence over environment variables. A study URL fills in
the server and project only where they were not given explicitly.

# Commands

Positional arguments after the flags name the command and its arguments.
With no command, "rate" runs.

# Validation

ParseFlags returns an error if:

  - no server URL can be determined
  - the strategy is not remote or local
  - the timeout does not parse or is not positive
  - the database type is not sqlite or postgres

The project id is checked per command by the router, since new-project
does not need one.
*/
package cliparse
