// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import "errors"

type State int

const (
	StateInit State = iota
	StateValidating
	StateReady // drawing the next sample; input disabled
	StatePresenting
	StateSubmitting
	StateExhausted
	StateInvalid
	StateUnavailable // transient failure, waiting for a retry
	StateClosed
)

var stateNames = [...]string{
	StateInit:        "init",
	StateValidating:  "validating",
	StateReady:       "ready",
	StatePresenting:  "presenting",
	StateSubmitting:  "submitting",
	StateExhausted:   "exhausted",
	StateInvalid:     "invalid",
	StateUnavailable: "unavailable",
	StateClosed:      "closed",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Terminal reports whether the loop should stop
func (s State) Terminal() bool {
	return s == StateExhausted || s == StateInvalid || s == StateClosed
}

// Machine is the session loop state. Step is its only mutator.
type Machine struct {
	State     State
	Current   *Presentation // on screen while Presenting or Submitting
	Validated bool
	Rated     int
	Err       error // last failure shown to the user
}

// Events

type Event interface{ isEvent() }

type (
	Start            struct{}
	Validated        struct{}
	ValidationFailed struct{ Err error }
	SampleDrawn      struct{ Presentation Presentation }
	NoSamplesLeft    struct{}
	DrawFailed       struct{ Err error }
	Choose           struct{ Slot Slot }
	Submitted        struct{}
	SubmitFailed     struct{ Err error }
	Retry            struct{}
	Quit             struct{}
)

func (Start) isEvent()            {}
func (Validated) isEvent()        {}
func (ValidationFailed) isEvent() {}
func (SampleDrawn) isEvent()      {}
func (NoSamplesLeft) isEvent()    {}
func (DrawFailed) isEvent()       {}
func (Choose) isEvent()           {}
func (Submitted) isEvent()        {}
func (SubmitFailed) isEvent()     {}
func (Retry) isEvent()            {}
func (Quit) isEvent()             {}

// Effects

type Effect interface{ isEffect() }

type NoticeKind int

const (
	NoticeUnknownStudy NoticeKind = iota
	NoticeUnavailable
	NoticeSubmitFailed
	NoticeDone
)

type (
	DoValidate struct{}
	DoDraw     struct{}
	DoSubmit   struct {
		Presentation Presentation
		Slot         Slot
		Variant      Variant
	}
	Present   struct{ Presentation Presentation }
	SetInput  struct{ Enabled bool }
	ShowStudy struct{ Valid bool }
	Notify    struct {
		Kind NoticeKind
		Err  error
	}
)

func (DoValidate) isEffect() {}
func (DoDraw) isEffect()     {}
func (DoSubmit) isEffect()   {}
func (Present) isEffect()    {}
func (SetInput) isEffect()   {}
func (ShowStudy) isEffect()  {}
func (Notify) isEffect()     {}

// Step applies one event. Events that do not apply to the current state
// are ignored, which is what stops a second choice while a rating is in
// flight.
func Step(m Machine, ev Event) (Machine, []Effect) {
	if _, ok := ev.(Quit); ok {
		if m.State.Terminal() {
			return m, nil
		}
		m.State = StateClosed
		m.Current = nil
		return m, []Effect{SetInput{Enabled: false}}
	}

	switch m.State {
	case StateInit:
		if _, ok := ev.(Start); ok {
			m.State = StateValidating
			return m, []Effect{DoValidate{}}
		}

	case StateValidating:
		switch e := ev.(type) {
		case Validated:
			m.State = StateReady
			m.Validated = true
			m.Err = nil
			return m, []Effect{ShowStudy{Valid: true}, DoDraw{}}
		case ValidationFailed:
			return failed(m, e.Err)
		}

	case StateReady:
		switch e := ev.(type) {
		case SampleDrawn:
			p := e.Presentation
			m.State = StatePresenting
			m.Current = &p
			return m, []Effect{Present{Presentation: p}, SetInput{Enabled: true}}
		case NoSamplesLeft:
			m.State = StateExhausted
			return m, []Effect{Notify{Kind: NoticeDone}}
		case DrawFailed:
			return failed(m, e.Err)
		}

	case StatePresenting:
		if e, ok := ev.(Choose); ok && m.Current != nil {
			m.State = StateSubmitting
			return m, []Effect{
				SetInput{Enabled: false},
				DoSubmit{Presentation: *m.Current, Slot: e.Slot, Variant: m.Current.VariantAt(e.Slot)},
			}
		}

	case StateSubmitting:
		switch e := ev.(type) {
		case Submitted:
			m.State = StateReady
			m.Current = nil
			m.Rated++
			m.Err = nil
			return m, []Effect{DoDraw{}}
		case SubmitFailed:
			// Any failure, a 401 included, keeps the same sample for a retry
			m.State = StatePresenting
			m.Err = e.Err
			return m, []Effect{Notify{Kind: NoticeSubmitFailed, Err: e.Err}, SetInput{Enabled: true}}
		}

	case StateUnavailable:
		if _, ok := ev.(Retry); ok {
			m.Err = nil
			if !m.Validated {
				m.State = StateValidating
				return m, []Effect{DoValidate{}}
			}
			m.State = StateReady
			return m, []Effect{DoDraw{}}
		}
	}

	return m, nil
}

// failed moves to Invalid on an unknown study and to Unavailable otherwise
func failed(m Machine, err error) (Machine, []Effect) {
	m.Err = err
	m.Current = nil
	if errors.Is(err, ErrUnknownStudy) {
		m.State = StateInvalid
		return m, []Effect{ShowStudy{Valid: false}, Notify{Kind: NoticeUnknownStudy, Err: err}}
	}
	m.State = StateUnavailable
	return m, []Effect{Notify{Kind: NoticeUnavailable, Err: err}}
}
