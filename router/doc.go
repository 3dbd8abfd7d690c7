// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router maps quickly-rate commands to handlers.

# Command Registration

NewRouter creates a Router with every command registered:

	r := router.NewRouter(client, cfg, log, os.Stdin, os.Stdout)
	err := r.Dispatch(ctx, cfg.Command, cfg.Args)

# Commands

Participant:

	rate        - Rate samples interactively (default)
	my-ratings  - List your ratings

Study administration:

	samples     - List all samples
	ratings     - List all ratings
	results     - Rank sources by win share
	export      - Export to SQLite or PostgreSQL
	new-project - Create a project (admin secret)
	add-sample  - Add a sample (project admin token)

Every command runs inside a trace span and logs its outcome and duration.
An unknown name returns ErrUnknownCommand.
*/
package router
