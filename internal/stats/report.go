package stats

import (
	"context"

	"github.com/verte-zerg/rsvp/internal/model"
	"github.com/verte-zerg/rsvp/internal/store"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Runs    []model.RunAggregate
	Summary Summary
	Curve   []float64
}

// BuildReport loads runs and prepares the WPM curve.
func BuildReport(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (Report, error) {
	runs, err := st.ListRuns(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(runs) > cfg.Last {
		runs = runs[len(runs)-cfg.Last:]
	}
	return Report{
		Runs:    runs,
		Summary: Summarize(runs),
		Curve:   MovingAverage(WPMSeries(runs), cfg.CurveWindow),
	}, nil
}
