// Package pace holds the reading pace state and the per-word timing model.
package pace

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	baseUnit      = 0.9
	sentenceUnit  = 1.2
	multiWordUnit = 1.2
	lengthUnit    = 0.04

	// FirstWordFloor is the minimum display time of the first word of a run.
	FirstWordFloor = 200 * time.Millisecond
)

// Duration returns how long word stays on screen at the given pace.
// The first word of a run is never shown for less than FirstWordFloor.
func Duration(word string, wpm int, first bool) time.Duration {
	if wpm < 1 {
		wpm = 1
	}
	units := baseUnit
	switch {
	case strings.HasSuffix(word, "."):
		units = sentenceUnit
	case strings.Contains(word, " "):
		units = multiWordUnit
	}
	units += lengthUnit * math.Sqrt(float64(utf8.RuneCountInString(word)))

	seconds := units * 60 / float64(wpm)
	d := time.Duration(seconds * float64(time.Second))
	if first && d < FirstWordFloor {
		return FirstWordFloor
	}
	return d
}
