// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// TokenBytes is the decoded size of project ids and admin tokens
const TokenBytes = 32

var (
	ErrInvalidToken    = errors.New("invalid token format")
	ErrInvalidStudyURL = errors.New("invalid study URL")
)

// ValidateToken checks that a token is TokenBytes of hex.
// The service rejects anything else with 401 before looking it up.
func ValidateToken(token string) error {
	if len(token) != TokenBytes*2 {
		return ErrInvalidToken
	}
	if _, err := hex.DecodeString(token); err != nil {
		return ErrInvalidToken
	}
	return nil
}

// BearerHeader formats the Authorization header value for a token
func BearerHeader(token string) string {
	return "Bearer " + token
}

// ParseStudyURL splits a study link into the service base URL and the
// project id carried in its fragment, e.g. http://host:8080/#<project_id>
func ParseStudyURL(raw string) (serverURL, projectID string, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidStudyURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", "", fmt.Errorf("%w: missing scheme or host", ErrInvalidStudyURL)
	}

	projectID = NormalizeProjectID(u.Fragment)
	u.Fragment = ""
	u.RawFragment = ""
	u.RawQuery = ""

	return strings.TrimRight(u.String(), "/"), projectID, nil
}

// NormalizeProjectID strips whitespace and a leading '#'
func NormalizeProjectID(id string) string {
	return strings.TrimPrefix(strings.TrimSpace(id), "#")
}

// DisplayID returns the short form of a project id shown to participants
func DisplayID(projectID string) string {
	if len(projectID) <= 8 {
		return projectID
	}
	return projectID[:8]
}

// GenerateRequestID creates a unique ID for correlating client requests
// with service logs
func GenerateRequestID() string {
	return uuid.NewString()
}
