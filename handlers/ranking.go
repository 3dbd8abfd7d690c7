// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"sort"

	"github.com/danielhkuo/quickly-rate/models"
)

// UnlabelledSource names texts stored without a source
const UnlabelledSource = "(unlabelled)"

// sourceStats accumulates the outcomes of one source
type sourceStats struct {
	Source   string
	Wins     int
	Outcomes []float64 // +1 for a win, -1 for a loss
}

// ComputeResults aggregates ratings into per-source win statistics and
// per-sample tallies. Each rating of a sample whose texts come from two
// different sources counts as one comparison between those sources.
func ComputeResults(projectID string, samples []models.Sample, ratings []models.Rating) models.ResultSummary {
	byID := make(map[int64]models.Sample, len(samples))
	tallies := make(map[int64]*models.SampleTally, len(samples))
	sources := make(map[string]*sourceStats)

	source := func(name string) *sourceStats {
		if name == "" {
			name = UnlabelledSource
		}
		s, ok := sources[name]
		if !ok {
			s = &sourceStats{Source: name}
			sources[name] = s
		}
		return s
	}

	for _, s := range samples {
		byID[s.ID] = s
		tallies[s.ID] = &models.SampleTally{SampleID: s.ID}
		// Sources with no ratings yet still appear
		source(s.Source1)
		source(s.Source2)
	}

	summary := models.ResultSummary{
		ProjectID:   projectID,
		SampleCount: len(byID),
		RatingCount: len(ratings),
	}

	raters := make(map[string]struct{})
	for _, r := range ratings {
		raters[r.IP] = struct{}{}

		s, ok := byID[r.SampleID]
		if !ok || (r.Rating != models.RatingText1 && r.Rating != models.RatingText2) {
			summary.OrphanRating++
			continue
		}

		winner, loser := source(s.Source1), source(s.Source2)
		if r.Rating == models.RatingText1 {
			tallies[s.ID].Text1Votes++
		} else {
			tallies[s.ID].Text2Votes++
			winner, loser = loser, winner
		}

		// A sample comparing a source with itself says nothing about it
		if winner == loser {
			continue
		}
		winner.Wins++
		winner.Outcomes = append(winner.Outcomes, 1)
		loser.Outcomes = append(loser.Outcomes, -1)
	}
	summary.RaterCount = len(raters)

	summary.Sources = rankSources(sources)

	summary.Samples = make([]models.SampleTally, 0, len(tallies))
	for _, t := range tallies {
		summary.Samples = append(summary.Samples, *t)
	}
	sort.Slice(summary.Samples, func(i, j int) bool {
		return summary.Samples[i].SampleID < summary.Samples[j].SampleID
	})

	return summary
}

func rankSources(sources map[string]*sourceStats) []models.SourceStats {
	stats := make([]models.SourceStats, 0, len(sources))
	for _, s := range sources {
		comparisons := len(s.Outcomes)
		st := models.SourceStats{
			Source:      s.Source,
			Wins:        s.Wins,
			Comparisons: comparisons,
			Preference:  mean(s.Outcomes),
		}
		if comparisons > 0 {
			st.WinShare = float64(s.Wins) / float64(comparisons)
		}
		stats = append(stats, st)
	}

	// Sort by ranking criteria (lexicographic order)
	sort.Slice(stats, func(i, j int) bool {
		a, b := stats[i], stats[j]

		// 1. Higher win share wins
		if a.WinShare != b.WinShare {
			return a.WinShare > b.WinShare
		}

		// 2. More comparisons wins (more evidence)
		if a.Comparisons != b.Comparisons {
			return a.Comparisons > b.Comparisons
		}

		// 3. Stable tie-breaking by name (ascending)
		return a.Source < b.Source
	})

	for i := range stats {
		stats[i].Rank = i + 1 // 1-indexed ranking
	}
	return stats
}

// mean calculates the arithmetic mean
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
