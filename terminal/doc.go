// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package terminal renders the rating session in a terminal and reads the
participant's keys, one line at a time.

	a or 1   choose the left text
	b or 2   choose the right text
	r        retry after the service was unavailable
	q        quit

Lines typed while a rating is being sent are discarded when input is
enabled again.
*/
package terminal
