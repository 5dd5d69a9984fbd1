// Package regress fits the error-versus-complexity line.
package regress

import (
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/stat"
)

// #region point
// Point is one (Total_Score, L3_Error) observation.
type Point struct {
	Score float64
	Error float64
}
// #endregion point

// #region result
// Result is a fitted line y = Slope*x + Intercept over Points
// observations.
type Result struct {
	Slope     float64
	Intercept float64
	Points    int
}
// #endregion result

// #region fit
// Fit runs ordinary least squares over the points. It reports ok=false
// ("insufficient data", a recognized outcome rather than an error) when
// the point set is empty or every x is identical (zero variance); it
// never panics. Points whose error is NaN must be filtered by the
// caller before the fit.
func Fit(points []Point) (Result, bool) {
	if len(points) == 0 {
		return Result{}, false
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	degenerate := true
	for i, p := range points {
		xs[i] = p.Score
		ys[i] = p.Error
		if p.Score != points[0].Score {
			degenerate = false
		}
	}
	if degenerate {
		return Result{}, false
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(slope) || math.IsNaN(intercept) {
		return Result{}, false
	}
	return Result{Slope: slope, Intercept: intercept, Points: len(points)}, true
}
// #endregion fit

// #region summary
// Summary renders the two-line regression artifact.
func (r Result) Summary() string {
	return fmt.Sprintf("%s\nUsed %d points.\n", r.Line(), r.Points)
}

// Line renders the fitted line with 4 decimal places.
func (r Result) Line() string {
	return fmt.Sprintf("Linear regression (Error vs Total_Score):  y = %.4f * x + %.4f", r.Slope, r.Intercept)
}

// WriteArtifact persists the summary to a text file.
func (r Result) WriteArtifact(path string) error {
	if err := os.WriteFile(path, []byte(r.Summary()), 0o644); err != nil {
		return fmt.Errorf("write regression artifact: %w", err)
	}
	return nil
}
// #endregion summary
