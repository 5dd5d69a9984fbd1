// Package replay recomputes a recorded run's regression from its
// persisted (score, error) points, without touching the CSVs or
// re-running any trainer.
package replay

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/logging"
	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/regress"
	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/runlog"
)

// #region types
// Result compares a run's stored regression against a fresh fit over
// the same logged points.
type Result struct {
	RunID  string
	Points int

	// Recorded is nil when the run stored no regression (insufficient
	// data, or the run failed before the fit).
	Recorded *regress.Result

	// Recomputed is nil when the logged points are insufficient.
	Recomputed *regress.Result

	// Match reports whether recorded and recomputed agree (both absent,
	// or equal to 4 decimal places, the artifact's precision).
	Match bool
}
// #endregion types

// #region replay
// Replay re-fits the regression for a recorded run.
func Replay(store *runlog.Store, runID string) (Result, error) {
	run, err := store.GetRun(runID)
	if err != nil {
		return Result{}, err
	}

	entries, err := logging.ListInvocations(store.DB(), runID)
	if err != nil {
		return Result{}, err
	}

	var points []regress.Point
	for _, e := range entries {
		if e.TotalScore == nil || e.L3Error == nil || math.IsNaN(*e.L3Error) {
			continue
		}
		points = append(points, regress.Point{Score: *e.TotalScore, Error: *e.L3Error})
	}

	res := Result{RunID: runID, Points: len(points)}

	if run.RegSlope != nil && run.RegIntercept != nil && run.RegPoints != nil {
		res.Recorded = &regress.Result{
			Slope:     *run.RegSlope,
			Intercept: *run.RegIntercept,
			Points:    *run.RegPoints,
		}
	}

	if fit, ok := regress.Fit(points); ok {
		res.Recomputed = &fit
	}

	res.Match = matches(res.Recorded, res.Recomputed)
	return res, nil
}
// #endregion replay

// #region compare
func matches(recorded, recomputed *regress.Result) bool {
	if recorded == nil || recomputed == nil {
		return recorded == nil && recomputed == nil
	}
	if recorded.Points != recomputed.Points {
		return false
	}
	return round4(recorded.Slope) == round4(recomputed.Slope) &&
		round4(recorded.Intercept) == round4(recomputed.Intercept)
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// Describe renders a one-line human summary of the comparison.
func (r Result) Describe() string {
	switch {
	case r.Recorded == nil && r.Recomputed == nil:
		return fmt.Sprintf("run %s: insufficient data in both recorded and replayed fit (%d points)", r.RunID, r.Points)
	case r.Match:
		return fmt.Sprintf("run %s: replay matches recorded fit (%d points)", r.RunID, r.Points)
	default:
		return fmt.Sprintf("run %s: replay DIVERGES from recorded fit", r.RunID)
	}
}
// #endregion compare
