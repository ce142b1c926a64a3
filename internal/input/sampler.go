// Package input samples control keystrokes from the terminal without
// blocking the presentation clock.
package input

import (
	"context"

	"github.com/verte-zerg/rsvp/internal/pace"
)

// Control keys.
const (
	KeySlower = '['
	KeyFaster = ']'
	KeyPause  = ' '
)

// Source is a raw, byte-oriented control channel.
type Source interface {
	// Pending reports whether a byte can be read without blocking.
	Pending() (bool, error)
	// WaitByte consumes one byte, blocking until one arrives or ctx is done.
	WaitByte(ctx context.Context) (byte, error)
}

// Event is the effect of one sampled keystroke.
type Event int

const (
	// EventNone means the key was not a command.
	EventNone Event = iota
	// EventPace means the wpm changed.
	EventPace
	// EventPaused means the stream just entered pause.
	EventPaused
	// EventResumed means the stream just left pause.
	EventResumed
)

// Sampler interprets control keystrokes against a pace state.
type Sampler struct {
	src   Source
	state *pace.State
}

// NewSampler returns a sampler reading src and mutating state.
func NewSampler(src Source, state *pace.State) *Sampler {
	return &Sampler{src: src, state: state}
}

// Next consumes one keystroke and applies it. ok is false when the stream is
// running and nothing is pending; while paused Next blocks for a key.
func (s *Sampler) Next(ctx context.Context) (ev Event, ok bool, err error) {
	if !s.state.Paused {
		pending, err := s.src.Pending()
		if err != nil {
			return EventNone, false, err
		}
		if !pending {
			return EventNone, false, nil
		}
	}
	b, err := s.src.WaitByte(ctx)
	if err != nil {
		return EventNone, false, err
	}
	return s.Apply(b), true, nil
}

// Apply interprets b as a command. Unknown bytes are ignored.
func (s *Sampler) Apply(b byte) Event {
	switch b {
	case KeySlower:
		s.state.Slower()
		return EventPace
	case KeyFaster:
		s.state.Faster()
		return EventPace
	case KeyPause:
		if s.state.TogglePause() {
			return EventPaused
		}
		return EventResumed
	default:
		return EventNone
	}
}
