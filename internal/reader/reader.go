// Package reader drives the word-by-word presentation loop.
package reader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/verte-zerg/rsvp/internal/input"
	"github.com/verte-zerg/rsvp/internal/model"
	"github.com/verte-zerg/rsvp/internal/orp"
	"github.com/verte-zerg/rsvp/internal/pace"
	"github.com/verte-zerg/rsvp/internal/render"
	"github.com/verte-zerg/rsvp/internal/text"
)

// waitSlice is the longest stretch the loop sleeps without sampling input.
const waitSlice = 20 * time.Millisecond

// Counters accumulate what has been shown since the run started.
type Counters struct {
	StartedAt time.Time
	Words     int
	Letters   int
}

// Option configures a Reader.
type Option func(*Reader)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(r *Reader) {
		r.clock = c
	}
}

// WithControl enables interactive pace control from src.
func WithControl(src input.Source) Option {
	return func(r *Reader) {
		if src != nil {
			r.sampler = input.NewSampler(src, r.state)
		}
	}
}

// WithErrorOutput sets where warnings are written. Defaults to stderr.
func WithErrorOutput(w io.Writer) Option {
	return func(r *Reader) {
		r.errOut = w
	}
}

// WithSourceLabel names the input in the run statistics.
func WithSourceLabel(label string) Option {
	return func(r *Reader) {
		r.source = label
	}
}

// Reader owns the pace state, counters and line history of one run. It is
// not safe for concurrent use.
type Reader struct {
	cfg     model.Config
	out     *render.Renderer
	clock   Clock
	state   *pace.State
	sampler *input.Sampler
	errOut  io.Writer
	source  string

	initialWPM int

	history  text.LineHistory
	counters Counters
	started  bool
	current  text.Word
	pivot    int
}

// New returns a reader that draws through out.
func New(cfg model.Config, out *render.Renderer, opts ...Option) *Reader {
	r := &Reader{
		cfg:    cfg,
		out:    out,
		clock:  systemClock{},
		state:  pace.NewState(cfg.WPM),
		errOut: os.Stderr,
	}
	r.initialWPM = r.state.WPM
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run presents every line of lines and returns the run statistics. A
// cancelled ctx ends the run early, even while waiting for the next line;
// the returned stats are then marked interrupted and err is nil.
func (r *Reader) Run(ctx context.Context, lines *text.LineSource) (model.RunStats, error) {
	r.counters = Counters{StartedAt: r.clock.Now()}
	feedCtx, stop := context.WithCancel(ctx)
	defer stop()
	next := feed(feedCtx, lines)
	for {
		var res lineResult
		select {
		case <-ctx.Done():
			return r.finish(true), nil
		case res = <-next:
		}
		// A producer killed by the same signal may close the input first.
		if ctx.Err() != nil {
			return r.finish(true), nil
		}
		if res.err != nil {
			return r.finish(false), res.err
		}
		if !res.ok {
			return r.finish(false), nil
		}
		r.history.Push(res.line)
		for _, word := range text.Segment(res.line, r.cfg.MultiWord) {
			if err := r.show(ctx, word); err != nil {
				if ctx.Err() != nil {
					return r.finish(true), nil
				}
				return r.finish(false), err
			}
		}
	}
}

type lineResult struct {
	line string
	ok   bool
	err  error
}

// feed reads lines on its own goroutine, at most one line ahead of the loop.
// The goroutine touches nothing but lines and exits once ctx is done or the
// input ends; a read that never returns leaves it parked until process exit.
func feed(ctx context.Context, lines *text.LineSource) <-chan lineResult {
	ch := make(chan lineResult)
	go func() {
		defer close(ch)
		for {
			line, ok, err := lines.Next()
			select {
			case ch <- lineResult{line: line, ok: ok, err: err}:
			case <-ctx.Done():
				return
			}
			if !ok || err != nil {
				return
			}
		}
	}()
	return ch
}

func (r *Reader) show(ctx context.Context, word text.Word) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.current = word
	r.pivot = orp.Locate(word.Text)
	if err := r.draw(); err != nil {
		return err
	}
	d := pace.Duration(word.Text, r.state.WPM, !r.started)
	r.started = true
	if err := r.wait(ctx, d); err != nil {
		return err
	}
	r.counters.Words++
	r.counters.Letters += word.Len()
	return nil
}

// wait sleeps for d in slices, sampling control keys after each one. Time
// spent paused does not count against d.
func (r *Reader) wait(ctx context.Context, d time.Duration) error {
	remaining := d
	for remaining > 0 {
		step := remaining
		if r.sampler != nil && step > waitSlice {
			step = waitSlice
		}
		start := r.clock.Now()
		if err := r.clock.Sleep(ctx, step); err != nil {
			return err
		}
		elapsed := r.clock.Now().Sub(start)
		if elapsed < step {
			elapsed = step
		}
		remaining -= elapsed
		if err := r.drain(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) drain(ctx context.Context) error {
	for r.sampler != nil {
		ev, ok, err := r.sampler.Next(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return r.disableControls(err)
		}
		if !ok {
			return nil
		}
		if err := r.handle(ev); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) handle(ev input.Event) error {
	switch ev {
	case input.EventPace:
		return r.draw()
	case input.EventPaused:
		last, _ := r.history.Last()
		prev, hasPrev := r.history.Previous()
		if err := r.out.Context(prev, hasPrev, last, r.current.Token); err != nil {
			return err
		}
		return r.draw()
	case input.EventResumed:
		if err := r.out.ClearContext(); err != nil {
			return err
		}
		return r.draw()
	default:
		return nil
	}
}

// disableControls falls back to a fixed pace after the control channel
// fails. The failure is reported once.
func (r *Reader) disableControls(cause error) error {
	r.sampler = nil
	wasPaused := r.state.Paused
	r.state.Paused = false
	if !errors.Is(cause, io.EOF) {
		r.logf("interactive controls disabled: %v\n", cause)
	} else {
		r.logln("interactive controls disabled: control channel closed")
	}
	if wasPaused {
		if err := r.out.ClearContext(); err != nil {
			return err
		}
	}
	return r.draw()
}

func (r *Reader) draw() error {
	if r.current.Text == "" {
		return nil
	}
	if err := r.out.Word(r.current.Text, r.pivot, *r.state); err != nil {
		return fmt.Errorf("failed to render word: %w", err)
	}
	return nil
}

// finish is the single exit path for both normal end and interruption.
func (r *Reader) finish(interrupted bool) model.RunStats {
	if r.started {
		if err := r.out.Finish(); err != nil {
			// Best-effort newline before the report.
			_ = err
		}
	}
	return model.RunStats{
		StartedAt:   r.counters.StartedAt,
		EndedAt:     r.clock.Now(),
		Source:      r.source,
		Words:       r.counters.Words,
		Letters:     r.counters.Letters,
		InitialWPM:  r.initialWPM,
		FinalWPM:    r.state.WPM,
		MultiWord:   r.cfg.MultiWord,
		Interrupted: interrupted,
	}
}

func (r *Reader) logf(format string, args ...any) {
	if _, err := fmt.Fprintf(r.errOut, format, args...); err != nil {
		// Best-effort logging.
		_ = err
	}
}

func (r *Reader) logln(args ...any) {
	if _, err := fmt.Fprintln(r.errOut, args...); err != nil {
		// Best-effort logging.
		_ = err
	}
}
