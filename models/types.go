package models

// Rating values sent to new_rating
const (
	RatingText1 = 0
	RatingText2 = 1
)

// Request types

type NewRatingRequest struct {
	SampleID int64 `json:"sample_id"`
	Rating   int   `json:"rating"`
}

// Project is the hex project id the sample belongs to, not the admin token
type NewSampleRequest struct {
	Project string `json:"project"`
	Text1   string `json:"text1"`
	Text2   string `json:"text2"`
	Source1 string `json:"source1"`
	Source2 string `json:"source2"`
}

// Response types

type NewProjectResponse struct {
	ProjectID  string `json:"project_id"`
	AdminToken string `json:"admin_token"`
}

// Domain types

// Sample is one pairwise comparison. Source1 and Source2 are only
// returned by get_samples.
type Sample struct {
	ID      int64  `json:"id"`
	Text1   string `json:"text1"`
	Text2   string `json:"text2"`
	Source1 string `json:"source1,omitempty"`
	Source2 string `json:"source2,omitempty"`
}

// MyRating is a rating made by the calling participant (get_my_ratings)
type MyRating struct {
	ID       int64 `json:"id"`
	SampleID int64 `json:"sample_id"`
	Rating   int   `json:"rating"`
}

// Rating is a project-wide rating record (get_ratings).
// IP is the server's keyed hash of the rater address, hex encoded.
type Rating struct {
	ID       int64  `json:"id"`
	SampleID int64  `json:"sample_id"`
	IP       string `json:"ip"`
	Rating   int    `json:"rating"`
}

// Result types

type SourceStats struct {
	Source      string  `json:"source"`
	Wins        int     `json:"wins"`
	Comparisons int     `json:"comparisons"`
	WinShare    float64 `json:"win_share"`
	Preference  float64 `json:"preference"` // mean signed outcome in [-1, 1]
	Rank        int     `json:"rank"`       // 1-indexed ranking
}

type SampleTally struct {
	SampleID   int64 `json:"sample_id"`
	Text1Votes int   `json:"text1_votes"`
	Text2Votes int   `json:"text2_votes"`
}

type ResultSummary struct {
	ProjectID    string        `json:"project_id"`
	SampleCount  int           `json:"sample_count"`
	RatingCount  int           `json:"rating_count"`
	RaterCount   int           `json:"rater_count"`
	Sources      []SourceStats `json:"sources"`
	Samples      []SampleTally `json:"samples"`
	OrphanRating int           `json:"orphan_ratings"` // ratings for unknown sample ids
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
