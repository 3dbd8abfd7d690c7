// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-rate/auth"
	"github.com/danielhkuo/quickly-rate/models"
	"github.com/danielhkuo/quickly-rate/remote"
)

const (
	// TestProjectID is the project every FakeService starts with
	TestProjectID = "5f1c0e2a9b7d4c3e8a6f0b1d2c3e4f5a6b7c8d9e0f1a2b3c4d5e6f7a8b9c0d1e"

	// TestAdminToken is the admin token of TestProjectID
	TestAdminToken = "0a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20212223242526272829"

	// TestAdminSecret authorizes new_project
	TestAdminSecret = "test-admin-secret"

	// ClientIP is the address httptest clients connect from
	ClientIP = "127.0.0.1"

	ipSalt = "test-ip-salt"
)

// Request is one call seen by the fake service
type Request struct {
	Method string
	Path   string
	Token  string
}

type project struct {
	adminToken string
	samples    []models.Sample
	ratings    []models.Rating
}

type failure struct {
	path   string
	status int
	left   int
}

// FakeService is an in-memory rating service served over httptest.
// It implements every endpoint of the real service, answers 401 for
// unknown project ids, and can be told to fail the next calls.
type FakeService struct {
	Server *httptest.Server

	mu         sync.Mutex
	projects   map[string]*project
	nextSample int64
	nextRating int64
	failures   []failure
	requests   []Request
	delay      time.Duration
}

// NewFakeService starts a service holding TestProjectID with the given
// samples. Samples with a zero id get one assigned.
func NewFakeService(t *testing.T, samples ...models.Sample) *FakeService {
	t.Helper()

	f := &FakeService{
		projects:   make(map[string]*project),
		nextSample: 1,
		nextRating: 1,
	}
	f.projects[TestProjectID] = &project{adminToken: TestAdminToken}
	for _, s := range samples {
		f.AddSample(TestProjectID, s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /project/get_sample", f.getSample)
	mux.HandleFunc("GET /project/get_samples", f.getSamples)
	mux.HandleFunc("GET /project/get_my_ratings", f.getMyRatings)
	mux.HandleFunc("GET /project/get_ratings", f.getRatings)
	mux.HandleFunc("POST /project/new_rating", f.newRating)
	mux.HandleFunc("POST /project/new_sample", f.newSample)
	mux.HandleFunc("POST /admin/new_project", f.newProject)

	f.Server = httptest.NewServer(f.intercept(mux))
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the service base URL
func (f *FakeService) URL() string {
	return f.Server.URL
}

// Client returns a remote client for projectID against this service
func (f *FakeService) Client(projectID string) *remote.Client {
	return remote.New(f.Server.URL, projectID, &http.Client{Timeout: 5 * time.Second})
}

// AddSample stores a sample and returns it with its id
func (f *FakeService) AddSample(projectID string, s models.Sample) models.Sample {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := f.projects[projectID]
	if s.ID == 0 {
		s.ID = f.nextSample
	}
	if s.ID >= f.nextSample {
		f.nextSample = s.ID + 1
	}
	p.samples = append(p.samples, s)
	return s
}

// Rate records a rating from ClientIP as if an earlier session made it
func (f *FakeService) Rate(sampleID int64, rating int) {
	f.RateFrom(ClientIP, sampleID, rating)
}

// RateFrom records a rating from another participant address
func (f *FakeService) RateFrom(ip string, sampleID int64, rating int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addRating(f.projects[TestProjectID], ip, sampleID, rating)
}

// FailNext makes the next n calls to path answer status. An empty path
// matches every endpoint.
func (f *FakeService) FailNext(path string, status, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, failure{path: path, status: status, left: n})
}

// SetDelay holds every response for d, for timeout tests
func (f *FakeService) SetDelay(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delay = d
}

// Requests returns every call seen so far, failed ones included
func (f *FakeService) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// Count returns how many calls hit path
func (f *FakeService) Count(path string) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Path == path {
			n++
		}
	}
	return n
}

// Ratings returns every stored rating of TestProjectID
func (f *FakeService) Ratings() []models.Rating {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Rating(nil), f.projects[TestProjectID].ratings...)
}

// Samples returns every stored sample of TestProjectID
func (f *FakeService) Samples() []models.Sample {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Sample(nil), f.projects[TestProjectID].samples...)
}

func (f *FakeService) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Token:  tokenFromHeader(r.Header.Get("Authorization")),
		})
		delay := f.delay
		status := 0
		for i := range f.failures {
			fl := &f.failures[i]
			if fl.left > 0 && (fl.path == "" || fl.path == r.URL.Path) {
				fl.left--
				status = fl.status
				break
			}
		}
		f.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		if status != 0 {
			textResponse(w, status, http.StatusText(status))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// lookup resolves the bearer project id. The caller holds f.mu.
func (f *FakeService) lookup(w http.ResponseWriter, r *http.Request) (*project, bool) {
	token := tokenFromHeader(r.Header.Get("Authorization"))
	if auth.ValidateToken(token) != nil {
		textResponse(w, http.StatusUnauthorized, "Invalid Authorization")
		return nil, false
	}
	p, ok := f.projects[token]
	if !ok {
		textResponse(w, http.StatusUnauthorized, "Unknown Project")
		return nil, false
	}
	return p, true
}

func (f *FakeService) addRating(p *project, ip string, sampleID int64, rating int) {
	p.ratings = append(p.ratings, models.Rating{
		ID:       f.nextRating,
		SampleID: sampleID,
		IP:       hashIP(ip, ipSalt),
		Rating:   rating,
	})
	f.nextRating++
}

func ratedBy(p *project, ipHash string) map[int64]bool {
	rated := make(map[int64]bool)
	for _, r := range p.ratings {
		if r.IP == ipHash {
			rated[r.SampleID] = true
		}
	}
	return rated
}

// getSample hands out the lowest-id sample the caller has not rated
func (f *FakeService) getSample(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.lookup(w, r)
	if !ok {
		return
	}

	rated := ratedBy(p, hashIP(remoteIP(r), ipSalt))
	candidates := make([]models.Sample, 0, len(p.samples))
	for _, s := range p.samples {
		if !rated[s.ID] {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })

	s := candidates[0]
	jsonResponse(w, http.StatusOK, models.Sample{ID: s.ID, Text1: s.Text1, Text2: s.Text2})
}

func (f *FakeService) getSamples(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.lookup(w, r)
	if !ok {
		return
	}
	jsonResponse(w, http.StatusOK, append([]models.Sample{}, p.samples...))
}

func (f *FakeService) getMyRatings(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.lookup(w, r)
	if !ok {
		return
	}

	ipHash := hashIP(remoteIP(r), ipSalt)
	mine := []models.MyRating{}
	for _, rt := range p.ratings {
		if rt.IP == ipHash {
			mine = append(mine, models.MyRating{ID: rt.ID, SampleID: rt.SampleID, Rating: rt.Rating})
		}
	}
	jsonResponse(w, http.StatusOK, mine)
}

func (f *FakeService) getRatings(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.lookup(w, r)
	if !ok {
		return
	}
	jsonResponse(w, http.StatusOK, append([]models.Rating{}, p.ratings...))
}

func (f *FakeService) newRating(w http.ResponseWriter, r *http.Request) {
	var req models.NewRatingRequest
	if err := parseJSONBody(r, &req); err != nil {
		textResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.lookup(w, r)
	if !ok {
		return
	}
	f.addRating(p, remoteIP(r), req.SampleID, req.Rating)
	w.WriteHeader(http.StatusOK)
}

func (f *FakeService) newSample(w http.ResponseWriter, r *http.Request) {
	var req models.NewSampleRequest
	if err := parseJSONBody(r, &req); err != nil {
		textResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	f.mu.Lock()
	p, ok := f.projects[req.Project]
	f.mu.Unlock()
	if !ok {
		textResponse(w, http.StatusNotFound, "Unknown Project")
		return
	}

	token := tokenFromHeader(r.Header.Get("Authorization"))
	if !matches(token, p.adminToken) {
		textResponse(w, http.StatusUnauthorized, "Invalid Authorization")
		return
	}

	f.AddSample(req.Project, models.Sample{
		Text1:   req.Text1,
		Text2:   req.Text2,
		Source1: req.Source1,
		Source2: req.Source2,
	})
	w.WriteHeader(http.StatusOK)
}

func (f *FakeService) newProject(w http.ResponseWriter, r *http.Request) {
	token := tokenFromHeader(r.Header.Get("Authorization"))
	if !matches(token, TestAdminSecret) {
		textResponse(w, http.StatusUnauthorized, "Invalid Authorization")
		return
	}

	projectID, err := generateID(auth.TokenBytes)
	if err != nil {
		textResponse(w, http.StatusInternalServerError, "Failed to create project")
		return
	}
	adminToken, err := generateID(auth.TokenBytes)
	if err != nil {
		textResponse(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	f.mu.Lock()
	f.projects[projectID] = &project{adminToken: adminToken}
	f.mu.Unlock()

	jsonResponse(w, http.StatusOK, models.NewProjectResponse{ProjectID: projectID, AdminToken: adminToken})
}
