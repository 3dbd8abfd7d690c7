// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the quickly-rate commands.

# Handler Types

Each handler is a struct holding the service client, config, logger and
output writer:

  - RatingHandler: the interactive rating session
  - ProjectHandler: listings and project administration
  - ResultsHandler: ranking of sources by win share
  - ExportHandler: export of samples and ratings to a database

Handlers are created via constructor functions and registered with the
router:

	ratingHandler := handlers.NewRatingHandler(client, cfg, log, os.Stdin, os.Stdout)

Every command method has the signature

	func(ctx context.Context, args []string) error

Argument errors wrap ErrUsage.

# Rating

Rate builds a session for the configured strategy ("remote" asks the
service for each sample, "local" downloads the project once and draws
from it), then hands control to the session loop with a terminal UI.
A study link the service does not know ends with session.ErrUnknownStudy.

# Results

ComputeResults tallies ratings per sample and per source. A source wins
a comparison when the text it produced is chosen. Sources are ranked by
win share, then by number of comparisons, then by name. Ratings that
point at unknown samples or carry invalid values are counted as orphans.

# Export

Export fetches every sample and rating first and only then opens the
database, so a service failure never leaves a partial export behind.
*/
package handlers
