package pace

import "math"

const (
	slowerFactor = 0.9
	fasterFactor = 1.1
)

// State is the mutable pace of a run. WPM never drops below 1.
type State struct {
	WPM    int
	Paused bool
}

// NewState returns a running state at wpm, clamped to at least 1.
func NewState(wpm int) *State {
	if wpm < 1 {
		wpm = 1
	}
	return &State{WPM: wpm}
}

// Slower reduces the pace by 10%, rounding down.
func (s *State) Slower() {
	s.WPM = int(math.Floor(float64(s.WPM) * slowerFactor))
	if s.WPM < 1 {
		s.WPM = 1
	}
}

// Faster raises the pace by 10%, rounding up.
func (s *State) Faster() {
	s.WPM = int(math.Ceil(float64(s.WPM) * fasterFactor))
	if s.WPM < 1 {
		s.WPM = 1
	}
}

// TogglePause flips the pause flag and returns the new value.
func (s *State) TogglePause() bool {
	s.Paused = !s.Paused
	return s.Paused
}
