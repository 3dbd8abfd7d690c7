// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package remote is the HTTP client for the rating service.

# Participant Operations

Authenticated with the project id as bearer token:

	GET  /project/get_sample      → GetSample (ErrNoSample when none left)
	GET  /project/get_samples     → GetSamples
	GET  /project/get_my_ratings  → GetMyRatings
	POST /project/new_rating      → NewRating

# Admin Operations

	GET  /project/get_ratings     → GetRatings (project id)
	POST /admin/new_project       → NewProject (service admin secret)
	POST /project/new_sample      → NewSample (project admin token)

# Errors

A 401 is reported as ErrUnauthorized, wrapped with the operation name.
GetSample returns ErrNoSample on 204 or a null body; a 404 is a
*StatusError like any other unexpected status. Transport failures and
timeouts are returned wrapped, so errors.Is works against context errors.
Nothing is retried.
*/
package remote
