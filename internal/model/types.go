// Package model defines shared data structures.
package model

import "time"

// Config defines reading settings.
type Config struct {
	WPM         int
	MultiWord   bool
	PivotColumn int
	History     bool
}

// HistoryConfig defines filters for run history output.
type HistoryConfig struct {
	Since       *time.Time
	Last        int
	CurveWindow int
}

// RunStats captures a finished or interrupted reading run.
type RunStats struct {
	StartedAt   time.Time
	EndedAt     time.Time
	Source      string
	Words       int
	Letters     int
	InitialWPM  int
	FinalWPM    int
	MultiWord   bool
	Interrupted bool
}

// Elapsed returns the wall-clock duration of the run.
func (s RunStats) Elapsed() time.Duration {
	if s.EndedAt.Before(s.StartedAt) {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// RunAggregate summarizes a stored run for reporting.
type RunAggregate struct {
	RunID       int64
	EndedAt     time.Time
	Source      string
	Words       int
	Letters     int
	FinalWPM    int
	Interrupted bool
	DurationMs  int64
}
