// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/rsvp/internal/model"
)

const sparkChars = " .:-=+*#%@"

// EffectiveWPM returns words per elapsed minute, or 0 for an empty duration.
func EffectiveWPM(words int, elapsed time.Duration) float64 {
	minutes := elapsed.Minutes()
	if minutes <= 0 {
		return 0
	}
	return float64(words) / minutes
}

// RunMetrics computes elapsed seconds and effective WPM for a stored run.
func RunMetrics(words int, durationMs int64) (seconds, wpm float64) {
	if durationMs <= 0 {
		return 0, 0
	}
	elapsed := time.Duration(durationMs) * time.Millisecond
	return elapsed.Seconds(), EffectiveWPM(words, elapsed)
}

// RenderRunReport prints the end-of-run statistics.
func RenderRunReport(w io.Writer, run model.RunStats) error {
	elapsed := run.Elapsed()
	lines := []string{
		fmt.Sprintf("Elapsed: %.2f s", elapsed.Seconds()),
		fmt.Sprintf("Words: %d", run.Words),
		fmt.Sprintf("Letters: %d", run.Letters),
		fmt.Sprintf("Effective WPM: %.2f", EffectiveWPM(run.Words, elapsed)),
	}
	if run.Interrupted {
		lines = append(lines, "Interrupted.")
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Summary aggregates stored runs.
type Summary struct {
	Runs    int
	Words   int
	Letters int
	AvgWPM  float64
	BestWPM float64
	Total   time.Duration
}

// Summarize computes totals and WPM figures over runs.
func Summarize(runs []model.RunAggregate) Summary {
	var s Summary
	var totalWPM float64
	for _, r := range runs {
		_, wpm := RunMetrics(r.Words, r.DurationMs)
		totalWPM += wpm
		s.BestWPM = math.Max(s.BestWPM, wpm)
		s.Words += r.Words
		s.Letters += r.Letters
		s.Total += time.Duration(r.DurationMs) * time.Millisecond
	}
	s.Runs = len(runs)
	if s.Runs > 0 {
		s.AvgWPM = totalWPM / float64(s.Runs)
	}
	return s
}

// RenderSummary prints a summary of stored runs.
func RenderSummary(w io.Writer, runs []model.RunAggregate) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	s := Summarize(runs)
	lines := []string{
		"Summary",
		fmt.Sprintf("Runs: %d", s.Runs),
		fmt.Sprintf("Words: %d", s.Words),
		fmt.Sprintf("Reading time: %s", s.Total.Round(time.Second)),
		fmt.Sprintf("Avg WPM: %.2f", s.AvgWPM),
		fmt.Sprintf("Best WPM: %.2f", s.BestWPM),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WPMSeries returns the effective WPM of each run in order.
func WPMSeries(runs []model.RunAggregate) []float64 {
	values := make([]float64, len(runs))
	for i, r := range runs {
		_, values[i] = RunMetrics(r.Words, r.DurationMs)
	}
	return values
}

// RunTable returns the header and rows describing runs.
func RunTable(runs []model.RunAggregate) ([]string, [][]string) {
	headers := []string{"Ended", "Source", "Words", "Letters", "Time (s)", "WPM", "Pace"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		seconds, wpm := RunMetrics(r.Words, r.DurationMs)
		source := r.Source
		if r.Interrupted {
			source += " *"
		}
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			source,
			fmt.Sprintf("%d", r.Words),
			fmt.Sprintf("%d", r.Letters),
			fmt.Sprintf("%.1f", seconds),
			fmt.Sprintf("%.1f", wpm),
			fmt.Sprintf("%d", r.FinalWPM),
		})
	}
	return headers, rows
}

// RenderRunTable prints one row per run. Interrupted runs are marked with *.
func RenderRunTable(w io.Writer, runs []model.RunAggregate) error {
	if len(runs) == 0 {
		return nil
	}
	headers, rows := RunTable(runs)
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
