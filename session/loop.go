// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"
)

// Input is a participant action read by the UI
type Input int

const (
	InputLeft Input = iota
	InputRight
	InputRetry
	InputQuit
)

// Progress is shown alongside each sample. Remaining is -1 when the
// source cannot tell.
type Progress struct {
	Rated     int
	Remaining int
}

type Notice struct {
	Kind NoticeKind
	Err  error
}

// UI renders the session and reads participant input
type UI interface {
	ShowStudy(label string)
	Present(p Presentation, progress Progress)
	SetInputEnabled(enabled bool)
	Notify(n Notice)

	// NextInput blocks for the next enabled input; io.EOF ends the session
	NextInput(ctx context.Context) (Input, error)
}

// Loop runs one participant session. It is the only code touching the
// machine, the source and the current sample, so none of them lock.
type Loop struct {
	manager    *Manager
	source     Source
	randomizer *Randomizer
	submitter  *Submitter
	ui         UI
	log        *zap.Logger

	machine Machine
}

func NewLoop(manager *Manager, randomizer *Randomizer, submitter *Submitter, ui UI, log *zap.Logger) *Loop {
	return &Loop{
		manager:    manager,
		source:     manager.Source(),
		randomizer: randomizer,
		submitter:  submitter,
		ui:         ui,
		log:        log,
	}
}

// Machine returns the current state snapshot
func (l *Loop) Machine() Machine {
	return l.machine
}

// Run drives the session until it reaches a terminal state, input ends,
// or ctx is cancelled while waiting for input.
func (l *Loop) Run(ctx context.Context) (State, error) {
	queue := []Event{Start{}}

	for {
		if len(queue) == 0 {
			if l.machine.State.Terminal() {
				return l.machine.State, nil
			}

			in, err := l.ui.NextInput(ctx)
			if errors.Is(err, io.EOF) {
				queue = append(queue, Quit{})
				continue
			}
			if err != nil {
				return l.machine.State, err
			}
			queue = append(queue, inputEvent(in))
			continue
		}

		ev := queue[0]
		queue = queue[1:]

		prev := l.machine.State
		var effects []Effect
		l.machine, effects = Step(l.machine, ev)
		if l.machine.State != prev {
			l.log.Debug("state changed", zap.Stringer("from", prev), zap.Stringer("to", l.machine.State))
		}

		for _, eff := range effects {
			if next := l.perform(ctx, eff); next != nil {
				queue = append(queue, next)
			}
		}
	}
}

func (l *Loop) perform(ctx context.Context, eff Effect) Event {
	switch e := eff.(type) {
	case DoValidate:
		if err := l.manager.Validate(ctx); err != nil {
			return ValidationFailed{Err: err}
		}
		return Validated{}

	case DoDraw:
		sample, err := l.source.Next(ctx)
		switch {
		case err == nil:
			return SampleDrawn{Presentation: l.randomizer.Assign(sample)}
		case errors.Is(err, ErrExhausted):
			return NoSamplesLeft{}
		default:
			l.log.Warn("could not fetch next sample", zap.Error(err))
			return DrawFailed{Err: err}
		}

	case DoSubmit:
		chosen := e.Presentation.Left.Text
		if e.Slot == SlotRight {
			chosen = e.Presentation.Right.Text
		}
		l.log.Debug("rating sample",
			zap.Int64("sample_id", e.Presentation.Sample.ID),
			zap.Stringer("slot", e.Slot),
			zap.Stringer("variant", e.Variant),
			zap.String("text", chosen),
		)
		if err := l.submitter.Submit(ctx, e.Presentation.Sample.ID, e.Variant); err != nil {
			return SubmitFailed{Err: err}
		}
		return Submitted{}

	case Present:
		l.ui.Present(e.Presentation, l.progress())
	case SetInput:
		l.ui.SetInputEnabled(e.Enabled)
	case ShowStudy:
		l.ui.ShowStudy(l.manager.Session().DisplayID())
	case Notify:
		l.ui.Notify(Notice{Kind: e.Kind, Err: e.Err})
	}
	return nil
}

func (l *Loop) progress() Progress {
	p := Progress{Rated: l.machine.Rated, Remaining: -1}
	if r, ok := l.source.(Remaining); ok {
		p.Remaining = r.Remaining()
	}
	return p
}

func inputEvent(in Input) Event {
	switch in {
	case InputLeft:
		return Choose{Slot: SlotLeft}
	case InputRight:
		return Choose{Slot: SlotRight}
	case InputRetry:
		return Retry{}
	default:
		return Quit{}
	}
}
