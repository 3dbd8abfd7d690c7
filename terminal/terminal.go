// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/danielhkuo/quickly-rate/session"
)

// lineBuffer bounds how many typed lines wait for the loop
const lineBuffer = 16

type line struct {
	text string
	err  error
	at   time.Time
}

// Terminal is the line-based rating screen. Presentation methods are
// called from the session loop only; a single reader goroutine feeds
// typed lines through a channel.
type Terminal struct {
	out     io.Writer
	lines   chan line
	pending []line

	quit      chan struct{}
	closeOnce sync.Once
	stopped   chan struct{} // closed when read returns

	enabled    bool
	disabledAt time.Time
	shown      int

	study  *color.Color
	label  *color.Color
	muted  *color.Color
	warn   *color.Color
	fail   *color.Color
	done   *color.Color
	prompt *color.Color
}

var _ session.UI = (*Terminal)(nil)

// New starts reading lines from in and renders to out
func New(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{
		out:     out,
		lines:   make(chan line, lineBuffer),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
		study:   color.New(color.FgCyan, color.Bold),
		label:   color.New(color.FgCyan, color.Bold),
		muted:   color.New(color.Faint),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed, color.Bold),
		done:    color.New(color.FgGreen, color.Bold),
		prompt:  color.New(color.Bold),
	}
	go t.read(in)
	return t
}

// Close stops delivering input. The reader goroutine exits once its
// current read returns.
func (t *Terminal) Close() {
	t.closeOnce.Do(func() { close(t.quit) })
}

func (t *Terminal) read(in io.Reader) {
	defer close(t.stopped)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if !t.send(line{text: scanner.Text(), at: time.Now()}) {
			return
		}
	}
	err := scanner.Err()
	if err == nil {
		err = io.EOF
	}
	t.send(line{err: err, at: time.Now()})
}

func (t *Terminal) send(l line) bool {
	select {
	case t.lines <- l:
		return true
	case <-t.quit:
		return false
	}
}

func (t *Terminal) ShowStudy(label string) {
	if label == "UNKNOWN" {
		t.fail.Fprintf(t.out, "Study: %s\n", label)
		return
	}
	t.study.Fprintf(t.out, "Study: %s\n", label)
}

func (t *Terminal) Present(p session.Presentation, progress session.Progress) {
	t.shown++

	fmt.Fprintln(t.out)
	t.muted.Fprintf(t.out, "%s sample · %s\n", humanize.Ordinal(t.shown), progressText(progress))
	fmt.Fprintln(t.out, "Which text do you prefer?")
	fmt.Fprintln(t.out)
	t.label.Fprint(t.out, "  [a] ")
	fmt.Fprintln(t.out, indent(p.Left.Text))
	fmt.Fprintln(t.out)
	t.label.Fprint(t.out, "  [b] ")
	fmt.Fprintln(t.out, indent(p.Right.Text))
	fmt.Fprintln(t.out)
}

// SetInputEnabled drops anything typed while input was disabled, so a
// double key press cannot rate the next sample. Lines that were already
// waiting, such as piped input, are kept.
func (t *Terminal) SetInputEnabled(enabled bool) {
	switch {
	case enabled && !t.enabled:
		t.drain()
	case !enabled && t.enabled:
		t.disabledAt = time.Now()
	}
	t.enabled = enabled
}

func (t *Terminal) Notify(n session.Notice) {
	switch n.Kind {
	case session.NoticeUnknownStudy:
		t.fail.Fprintln(t.out, "Unknown study. Check the link you were given.")
	case session.NoticeUnavailable:
		t.warn.Fprintf(t.out, "The rating service is unavailable: %v\n", n.Err)
		t.muted.Fprintln(t.out, "Press r to retry or q to quit.")
	case session.NoticeSubmitFailed:
		t.warn.Fprintf(t.out, "Your rating was not saved: %v\n", n.Err)
		t.muted.Fprintln(t.out, "Choose again to resend it.")
	case session.NoticeDone:
		t.done.Fprintln(t.out, "All samples rated. Thank you!")
	}
}

// NextInput returns the next recognised key. Unrecognised lines print a
// hint and are skipped.
func (t *Terminal) NextInput(ctx context.Context) (session.Input, error) {
	for {
		t.showPrompt()

		l, err := t.next(ctx)
		if err != nil {
			return 0, err
		}
		if l.err != nil {
			return 0, l.err
		}
		if in, ok := ParseInput(l.text); ok {
			return in, nil
		}
		if strings.TrimSpace(l.text) != "" {
			t.muted.Fprintln(t.out, "Type a or b to choose, r to retry, q to quit.")
		}
	}
}

func (t *Terminal) next(ctx context.Context) (line, error) {
	if len(t.pending) > 0 {
		l := t.pending[0]
		t.pending = t.pending[1:]
		return l, nil
	}

	select {
	case <-ctx.Done():
		return line{}, ctx.Err()
	case l := <-t.lines:
		return l, nil
	}
}

func (t *Terminal) showPrompt() {
	if t.enabled {
		t.prompt.Fprint(t.out, "a / b > ")
		return
	}
	t.prompt.Fprint(t.out, "> ")
}

// drain moves waiting lines to pending, minus those typed while disabled.
// End of input is always kept.
func (t *Terminal) drain() {
	for {
		select {
		case l := <-t.lines:
			t.pending = append(t.pending, l)
		default:
			kept := t.pending[:0]
			for _, l := range t.pending {
				if l.err != nil || t.disabledAt.IsZero() || !l.at.After(t.disabledAt) {
					kept = append(kept, l)
				}
			}
			t.pending = kept
			return
		}
	}
}

// ParseInput maps a typed line to an input. Matching ignores case and
// surrounding space.
func ParseInput(text string) (session.Input, bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "a", "1", "left":
		return session.InputLeft, true
	case "b", "2", "right":
		return session.InputRight, true
	case "r", "retry":
		return session.InputRetry, true
	case "q", "quit", "exit":
		return session.InputQuit, true
	}
	return 0, false
}

func progressText(p session.Progress) string {
	rated := humanize.Comma(int64(p.Rated)) + " rated"
	if p.Remaining < 0 {
		return rated
	}
	return rated + ", " + humanize.Comma(int64(p.Remaining)) + " left after this"
}

// indent aligns continuation lines of a multi-line text under the first
func indent(text string) string {
	return strings.ReplaceAll(strings.TrimRight(text, "\n"), "\n", "\n      ")
}
