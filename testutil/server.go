// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Server-side helpers for FakeService. They reproduce how the rating
// service answers, mints ids and keys ratings by rater.

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// textResponse writes a plain text body, which is how the service
// reports errors ("Unknown Project", "Invalid Authorization")
func textResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	w.Write([]byte(message))
}

func parseJSONBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// remoteIP checks X-Forwarded-For, X-Real-IP, then falls back to RemoteAddr
func remoteIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// generateID creates a random hex id of byteLen bytes
func generateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// tokenFromHeader skips the scheme word without checking it, like the service
func tokenFromHeader(header string) string {
	_, token, found := strings.Cut(header, " ")
	if !found {
		return ""
	}
	token, _, _ = strings.Cut(token, " ")
	return token
}

// matches compares tokens in constant time, ignoring hex case
func matches(presented, secret string) bool {
	return hmac.Equal([]byte(strings.ToLower(presented)), []byte(strings.ToLower(secret)))
}

// hashIP keys an address with salt so ratings never carry raw IPs
func hashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	return hex.EncodeToString(h.Sum(nil))
}
