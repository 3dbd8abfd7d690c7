// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session runs one participant's rating session.

# Components

  - Manager: validates the project id once before anything is shown
  - Source: yields unrated samples (RemoteSource or LocalSource)
  - Randomizer: assigns the two texts of a sample to the left and right slots
  - Submitter: posts the participant's choice
  - Loop: feeds events through Step and carries out the resulting effects

# Sample Sources

RemoteSource asks the service for a random unrated sample on every draw:

	src := session.NewRemoteSource(client)

LocalSource loads every sample and the participant's earlier ratings once,
then draws from a Pool with no further network calls:

	src := session.NewLocalSource(client, session.NewRand(seed, 1), log)

The pool and the randomizer use separate random streams.

# States

	init → validating → ready → presenting → submitting → ready → ... → exhausted

A rejected project id ends in invalid. Network failures go to unavailable,
from which the participant can retry. Quitting from any state ends in
closed. Step is pure, so every transition can be tested without a service.

# Errors

Callers only see four kinds: ErrUnknownStudy, ErrExhausted,
*TransientError and *SubmissionError. A failed submission keeps the same
sample on screen; the session advances only after the service accepts
the rating.
*/
package session
