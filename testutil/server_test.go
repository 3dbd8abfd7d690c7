// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-rate/auth"
)

func TestGenerateID(t *testing.T) {
	id, err := generateID(auth.TokenBytes)
	require.NoError(t, err)
	assert.NoError(t, auth.ValidateToken(id))

	other, err := generateID(auth.TokenBytes)
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestMatches(t *testing.T) {
	secret, _ := generateID(auth.TokenBytes)

	assert.True(t, matches(secret, secret))
	assert.True(t, matches(strings.ToUpper(secret), secret), "hex case is ignored")
	assert.False(t, matches(secret[:63]+"x", secret))
	assert.False(t, matches("", secret))
}

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"Token abc", "abc"},
		{"Bearer abc extra", "abc"},
		{"Bearer", ""},
		{"", ""},
		{auth.BearerHeader("xyz"), "xyz"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tokenFromHeader(tt.header), "header %q", tt.header)
	}
}

func TestHashIP(t *testing.T) {
	h := hashIP("192.168.1.1", "salt")

	assert.Equal(t, h, hashIP("192.168.1.1", "salt"))
	assert.NotEqual(t, h, hashIP("192.168.1.2", "salt"))
	assert.NotEqual(t, h, hashIP("192.168.1.1", "other"))
	assert.Len(t, h, 64)
}

func TestResponses(t *testing.T) {
	w := httptest.NewRecorder()
	jsonResponse(w, http.StatusCreated, map[string]int{"id": 1})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":1}`, w.Body.String())

	w = httptest.NewRecorder()
	textResponse(w, http.StatusUnauthorized, "Invalid Authorization")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid Authorization", w.Body.String())
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
}

func TestParseJSONBody(t *testing.T) {
	var v struct {
		SampleID int64 `json:"sample_id"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"sample_id":9}`))
	require.NoError(t, parseJSONBody(req, &v))
	assert.Equal(t, int64(9), v.SampleID)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, parseJSONBody(req, &v))
}

func TestRemoteIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr", "10.0.0.1:5555", nil, "10.0.0.1"},
		{"ipv6 remote addr", "[::1]:5555", nil, "::1"},
		{"no port", "10.0.0.2", nil, "10.0.0.2"},
		{"forwarded chain", "10.0.0.1:1", map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, "203.0.113.5"},
		{"real ip", "10.0.0.1:1", map[string]string{"X-Real-IP": "198.51.100.7"}, "198.51.100.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, remoteIP(req))
		})
	}
}
