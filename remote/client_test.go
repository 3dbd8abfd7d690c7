package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-rate/models"
)

const testProject = "aa11aa11aa11aa11aa11aa11aa11aa11aa11aa11aa11aa11aa11aa11aa11aa11"

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", testProject, &http.Client{Timeout: 5 * time.Second})
}

func TestGetSample(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/project/get_sample", r.URL.Path)
		assert.Equal(t, "Bearer "+testProject, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":12,"text1":"X","text2":"Y"}`))
	})

	got, err := c.GetSample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Sample{ID: 12, Text1: "X", Text2: "Y"}, got)
}

func TestGetSample_NoneLeft(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"no content", http.StatusNoContent, ""},
		{"null body", http.StatusOK, "null"},
		{"empty body", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.GetSample(context.Background())
			assert.ErrorIs(t, err, ErrNoSample)
		})
	}
}

func TestGetSample_Failures(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid Authorization", http.StatusUnauthorized)
	})
	_, err := c.GetSample(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "db down", http.StatusInternalServerError)
	})
	_, err = c.GetSample(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "get_sample", se.Op)
	assert.Equal(t, "db down", se.Body)

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "maintenance", Message: "back at noon"})
	})
	_, err = c.GetSample(context.Background())
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "maintenance: back at noon", se.Body)

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unknown Project", http.StatusNotFound)
	})
	_, err = c.GetSample(context.Background())
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.NotErrorIs(t, err, ErrNoSample)

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":`))
	})
	_, err = c.GetSample(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSample)
}

func TestGetSamplesAndRatings(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/project/get_samples":
			json.NewEncoder(w).Encode([]models.Sample{
				{ID: 1, Text1: "a", Text2: "b", Source1: "m1", Source2: "m2"},
				{ID: 2, Text1: "c", Text2: "d", Source1: "m2", Source2: "m1"},
			})
		case "/project/get_my_ratings":
			w.Write([]byte(`[{"id":5,"sample_id":1,"rating":1}]`))
		case "/project/get_ratings":
			w.Write([]byte(`[{"id":5,"sample_id":1,"ip":"beef","rating":1}]`))
		default:
			http.NotFound(w, r)
		}
	})

	samples, err := c.GetSamples(context.Background())
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, "m2", samples[1].Source1)

	mine, err := c.GetMyRatings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.MyRating{{ID: 5, SampleID: 1, Rating: 1}}, mine)

	all, err := c.GetRatings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Rating{{ID: 5, SampleID: 1, IP: "beef", Rating: 1}}, all)
}

func TestGetSamples_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.GetSamples(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = c.GetMyRatings(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestNewRating(t *testing.T) {
	var got models.NewRatingRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/project/new_rating", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	err := c.NewRating(context.Background(), models.NewRatingRequest{SampleID: 3, Rating: models.RatingText2})
	require.NoError(t, err)
	assert.Equal(t, models.NewRatingRequest{SampleID: 3, Rating: 1}, got)
}

func TestNewRating_Failure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := c.NewRating(context.Background(), models.NewRatingRequest{SampleID: 3})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "new_rating: unexpected status 500", se.Error())
}

func TestNewProject(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/new_project", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Write([]byte(`{"project_id":"p1","admin_token":"t1"}`))
	})

	resp, err := c.NewProject(context.Background(), "secret")
	require.NoError(t, err)
	assert.Equal(t, models.NewProjectResponse{ProjectID: "p1", AdminToken: "t1"}, resp)
}

func TestNewSample(t *testing.T) {
	var got models.NewSampleRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/project/new_sample", r.URL.Path)
		assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	})

	err := c.NewSample(context.Background(), "admin-token", models.NewSampleRequest{Text1: "x", Text2: "y"})
	require.NoError(t, err)
	assert.Equal(t, testProject, got.Project, "project defaults to the client's project")
	assert.Equal(t, "x", got.Text1)
}

func TestContextCancel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetSample(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestUnreachable(t *testing.T) {
	c := New("http://127.0.0.1:1", testProject, &http.Client{Timeout: time.Second})

	_, err := c.GetSample(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSample)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}
