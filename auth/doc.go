// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth handles study links, project tokens and request identifiers.

# Study Links

A study is shared as a link whose fragment carries the project id:

	server, projectID, err := auth.ParseStudyURL("http://host:8080/#3f9a...")

The project id doubles as the participant's bearer credential.

# Tokens

Project ids and admin tokens are 32 random bytes, hex encoded:

	err := auth.ValidateToken(projectID)  // ErrInvalidToken if malformed
	req.Header.Set("Authorization", auth.BearerHeader(projectID))

Only the first eight characters are ever shown on screen:

	auth.DisplayID(projectID)

# Request IDs

Each outgoing request carries a random UUID in X-Request-ID:

	id := auth.GenerateRequestID()
*/
package auth
