// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-rate/auth"
	"github.com/danielhkuo/quickly-rate/models"
)

// maxErrorBody bounds how much of an error body is kept for messages
const maxErrorBody = 512

var (
	// ErrUnauthorized is returned on 401: the project id or admin token
	// is unknown to the service.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoSample is returned by GetSample when nothing is left to rate
	ErrNoSample = errors.New("no sample available")
)

// StatusError is any other non-success response
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Client talks to the rating service. Participant operations authenticate
// with the project id; admin operations pass their own token.
type Client struct {
	BaseURL   string
	ProjectID string
	HTTP      *http.Client
}

// New returns a client for one project. The http client carries the
// timeout and transport middleware.
func New(baseURL, projectID string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		ProjectID: projectID,
		HTTP:      httpClient,
	}
}

// GetSample fetches one random sample the caller has not rated yet.
// The service answers 204 or a null body when none remain. A 404 is a
// *StatusError; the service sends it for a project it does not know.
func (c *Client) GetSample(ctx context.Context) (models.Sample, error) {
	const op = "get_sample"

	resp, err := c.do(ctx, op, http.MethodGet, "/project/get_sample", c.ProjectID, nil)
	if err != nil {
		return models.Sample{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent:
		return models.Sample{}, ErrNoSample
	default:
		return models.Sample{}, statusError(op, resp)
	}

	var sample *models.Sample
	if err := json.NewDecoder(resp.Body).Decode(&sample); err != nil {
		if errors.Is(err, io.EOF) {
			return models.Sample{}, ErrNoSample
		}
		return models.Sample{}, fmt.Errorf("%s: decode response: %w", op, err)
	}
	if sample == nil {
		return models.Sample{}, ErrNoSample
	}
	return *sample, nil
}

// GetSamples fetches every sample in the project
func (c *Client) GetSamples(ctx context.Context) ([]models.Sample, error) {
	var samples []models.Sample
	err := c.getJSON(ctx, "get_samples", "/project/get_samples", &samples)
	return samples, err
}

// GetMyRatings fetches the ratings the service attributes to this caller
func (c *Client) GetMyRatings(ctx context.Context) ([]models.MyRating, error) {
	var ratings []models.MyRating
	err := c.getJSON(ctx, "get_my_ratings", "/project/get_my_ratings", &ratings)
	return ratings, err
}

// GetRatings fetches every rating in the project
func (c *Client) GetRatings(ctx context.Context) ([]models.Rating, error) {
	var ratings []models.Rating
	err := c.getJSON(ctx, "get_ratings", "/project/get_ratings", &ratings)
	return ratings, err
}

// NewRating records one rating. Any 2xx is success; no body is read.
func (c *Client) NewRating(ctx context.Context, req models.NewRatingRequest) error {
	const op = "new_rating"

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%s: marshal request: %w", op, err)
	}

	resp, err := c.do(ctx, op, http.MethodPost, "/project/new_rating", c.ProjectID, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp)
	}
	return nil
}

// NewProject creates a project using the service admin secret
func (c *Client) NewProject(ctx context.Context, adminSecret string) (models.NewProjectResponse, error) {
	const op = "new_project"

	var out models.NewProjectResponse
	resp, err := c.do(ctx, op, http.MethodPost, "/admin/new_project", adminSecret, nil)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return out, statusError(op, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return out, nil
}

// NewSample adds a sample to the client's project using the project
// admin token
func (c *Client) NewSample(ctx context.Context, adminToken string, req models.NewSampleRequest) error {
	const op = "new_sample"

	if req.Project == "" {
		req.Project = c.ProjectID
	}
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%s: marshal request: %w", op, err)
	}

	resp, err := c.do(ctx, op, http.MethodPost, "/project/new_sample", adminToken, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(op, resp)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, v any) error {
	resp, err := c.do(ctx, op, http.MethodGet, path, c.ProjectID, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(op, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, op, method, path, token string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Authorization", auth.BearerHeader(token))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request: %w", op, err)
	}
	return resp, nil
}

func statusError(op string, resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: errorMessage(b)}
}

// errorMessage prefers a JSON error body and falls back to the raw text
func errorMessage(b []byte) string {
	var e models.ErrorResponse
	if json.Unmarshal(b, &e) == nil && e.Error != "" {
		if e.Message != "" {
			return e.Error + ": " + e.Message
		}
		return e.Error
	}
	return strings.TrimSpace(string(b))
}
