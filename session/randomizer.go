// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"math/rand/v2"

	"github.com/danielhkuo/quickly-rate/models"
)

// Variant identifies which stored text of a sample was chosen
type Variant int

const (
	VariantA Variant = models.RatingText1
	VariantB Variant = models.RatingText2
)

func (v Variant) String() string {
	if v == VariantB {
		return "B"
	}
	return "A"
}

// Slot is a screen position
type Slot int

const (
	SlotLeft Slot = iota
	SlotRight
)

func (s Slot) String() string {
	if s == SlotRight {
		return "right"
	}
	return "left"
}

type Choice struct {
	Text    string
	Variant Variant
}

// Presentation is a sample with its texts assigned to slots
type Presentation struct {
	Sample models.Sample
	Left   Choice
	Right  Choice
}

// VariantAt maps a screen slot back to the stored variant
func (p Presentation) VariantAt(slot Slot) Variant {
	if slot == SlotRight {
		return p.Right.Variant
	}
	return p.Left.Variant
}

// Randomizer flips one fair coin per shown sample to decide which text
// goes left. It must own its random stream.
type Randomizer struct {
	rng *rand.Rand
}

func NewRandomizer(rng *rand.Rand) *Randomizer {
	return &Randomizer{rng: rng}
}

func (r *Randomizer) Assign(sample models.Sample) Presentation {
	a := Choice{Text: sample.Text1, Variant: VariantA}
	b := Choice{Text: sample.Text2, Variant: VariantB}

	if r.rng.IntN(2) == 1 {
		return Presentation{Sample: sample, Left: b, Right: a}
	}
	return Presentation{Sample: sample, Left: a, Right: b}
}

// NewRand returns an independent random stream. A zero seed draws a
// random one; otherwise the same seed and stream reproduce a session.
func NewRand(seed int64, stream uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), stream))
}
