package pace

import (
	"math"
	"testing"
	"time"
)

func seconds(units float64, wpm int) time.Duration {
	return time.Duration(units * 60 / float64(wpm) * float64(time.Second))
}

func TestDurationMultipliers(t *testing.T) {
	tests := []struct {
		name string
		word string
		want time.Duration
	}{
		{name: "plain", word: "word", want: seconds(0.9+0.04*2, 60)},
		{name: "sentence end", word: "fox.", want: seconds(1.2+0.04*2, 60)},
		{name: "merged pair", word: "to be", want: seconds(1.2+0.04*math.Sqrt(5), 60)},
		{name: "merged sentence end", word: "is it.", want: seconds(1.2+0.04*math.Sqrt(6), 60)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Duration(tt.word, 60, false)
			if diff := got - tt.want; diff > time.Microsecond || diff < -time.Microsecond {
				t.Fatalf("Duration(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestDurationAlwaysPositive(t *testing.T) {
	for _, word := range []string{"a", "to be", "internationalization."} {
		for _, wpm := range []int{1, 250, 5000, 100000} {
			if got := Duration(word, wpm, false); got <= 0 {
				t.Fatalf("expected positive duration for %q at %d wpm, got %v", word, wpm, got)
			}
		}
	}
	if got := Duration("a", 0, false); got <= 0 {
		t.Fatalf("expected zero wpm to be clamped, got %v", got)
	}
}

func TestDurationScalesWithPace(t *testing.T) {
	slow := Duration("reading", 200, false)
	fast := Duration("reading", 400, false)
	half := slow / 2
	if diff := fast - half; diff > time.Microsecond || diff < -time.Microsecond {
		t.Fatalf("expected doubling wpm to halve duration: %v vs %v", fast, slow)
	}
}

func TestDurationFirstWordFloor(t *testing.T) {
	first := Duration("the", 1000, true)
	if first < FirstWordFloor {
		t.Fatalf("expected first word floor %v, got %v", FirstWordFloor, first)
	}
	later := Duration("the", 1000, false)
	if later >= FirstWordFloor {
		t.Fatalf("expected later word below floor, got %v", later)
	}
	slowFirst := Duration("the", 100, true)
	if slowFirst != Duration("the", 100, false) {
		t.Fatalf("expected floor to leave long durations untouched")
	}
}

func TestStatePaceAdjustments(t *testing.T) {
	s := NewState(250)
	s.Slower()
	if s.WPM != 225 {
		t.Fatalf("expected 225 after slowing, got %d", s.WPM)
	}
	s.Faster()
	if s.WPM != 248 {
		t.Fatalf("expected 248 after speeding up, got %d", s.WPM)
	}
}

func TestStateNeverBelowOne(t *testing.T) {
	s := NewState(3)
	for i := 0; i < 10; i++ {
		s.Slower()
	}
	if s.WPM != 1 {
		t.Fatalf("expected wpm clamped to 1, got %d", s.WPM)
	}
	s.Faster()
	if s.WPM != 2 {
		t.Fatalf("expected ceil(1.1) = 2, got %d", s.WPM)
	}
	if NewState(-5).WPM != 1 {
		t.Fatalf("expected NewState to clamp")
	}
}

func TestStateTogglePause(t *testing.T) {
	s := NewState(250)
	if !s.TogglePause() {
		t.Fatalf("expected paused after first toggle")
	}
	if s.TogglePause() {
		t.Fatalf("expected running after second toggle")
	}
	if s.WPM != 250 {
		t.Fatalf("expected wpm unchanged by pause, got %d", s.WPM)
	}
}
