package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/rsvp/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "rsvp.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListRuns(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	run := model.RunStats{
		StartedAt:   start,
		EndedAt:     start.Add(90 * time.Second),
		Source:      "book.txt",
		Words:       300,
		Letters:     1500,
		InitialWPM:  250,
		FinalWPM:    276,
		MultiWord:   true,
		Interrupted: true,
	}
	id, err := st.InsertRun(ctx, run)
	if err != nil {
		t.Fatalf("insert run: %v", err)
	}

	runs, err := st.ListRuns(ctx, model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.RunID != id || got.Source != "book.txt" || got.Words != 300 || got.Letters != 1500 {
		t.Fatalf("unexpected run %+v", got)
	}
	if got.FinalWPM != 276 || !got.Interrupted || got.DurationMs != 90000 {
		t.Fatalf("unexpected run %+v", got)
	}
	if !got.EndedAt.Equal(run.EndedAt) {
		t.Fatalf("expected ended at %v, got %v", run.EndedAt, got.EndedAt)
	}
}

func TestListRunsSince(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		start := base.AddDate(0, 0, i)
		if _, err := st.InsertRun(ctx, model.RunStats{StartedAt: start, EndedAt: start.Add(time.Minute), Source: "stdin", Words: i + 1}); err != nil {
			t.Fatalf("insert run: %v", err)
		}
	}
	since := base.AddDate(0, 0, 1)
	runs, err := st.ListRuns(ctx, model.HistoryConfig{Since: &since})
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 || runs[0].Words != 2 || runs[1].Words != 3 {
		t.Fatalf("unexpected runs %+v", runs)
	}
}
