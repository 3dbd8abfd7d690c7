// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"math/rand/v2"
	"slices"

	"github.com/danielhkuo/quickly-rate/models"
)

// Pool holds the samples the participant has not rated, keyed by id.
// A drawn sample is removed permanently, whatever happens to its rating.
type Pool struct {
	byID map[int64]models.Sample
	ids  []int64
	rng  *rand.Rand
}

// NewPool builds candidates minus already rated sample ids. Candidates
// sharing an id collapse to one entry (the last one wins).
func NewPool(candidates []models.Sample, rated []models.MyRating, rng *rand.Rand) *Pool {
	ratedIDs := make(map[int64]struct{}, len(rated))
	for _, r := range rated {
		ratedIDs[r.SampleID] = struct{}{}
	}

	byID := make(map[int64]models.Sample, len(candidates))
	for _, c := range candidates {
		if _, done := ratedIDs[c.ID]; done {
			continue
		}
		byID[c.ID] = c
	}

	// Sorted so a seeded rng reproduces the same draw order
	ids := make([]int64, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return &Pool{byID: byID, ids: ids, rng: rng}
}

func (p *Pool) Len() int {
	return len(p.ids)
}

func (p *Pool) Contains(id int64) bool {
	_, ok := p.byID[id]
	return ok
}

// IDs returns the remaining ids in ascending order
func (p *Pool) IDs() []int64 {
	out := slices.Clone(p.ids)
	slices.Sort(out)
	return out
}

// Draw removes and returns a uniformly chosen sample.
// ok is false once the pool is empty.
func (p *Pool) Draw() (sample models.Sample, ok bool) {
	n := len(p.ids)
	if n == 0 {
		return models.Sample{}, false
	}

	i := p.rng.IntN(n)
	id := p.ids[i]
	p.ids[i] = p.ids[n-1]
	p.ids = p.ids[:n-1]

	sample = p.byID[id]
	delete(p.byID, id)
	return sample, true
}
