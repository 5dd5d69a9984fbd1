// Package check runs lightweight post-run validation on the augmented
// table. Failures are informational; they never abort a completed run.
package check

import (
	"fmt"

	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/table"
)

// #region check-metric
// CheckMetric captures a single validation check result.
type CheckMetric struct {
	Name  string
	Value float64
	Pass  bool
}
// #endregion check-metric

// #region check-result
// CheckResult is the output of post-run validation.
type CheckResult struct {
	Passed  bool
	Metrics []CheckMetric
	Reason  string
}
// #endregion check-result

// #region harness
// Run validates the written records against what was loaded: the row
// count invariant, Total_Score on every row, every original column
// kept in the output header, and a rectangular schema (no row carrying
// columns outside the header). loadedRows and originalColumns are
// snapshots taken before the pipeline mutates records in place.
func Run(loadedRows int, originalColumns []string, written []table.Record) CheckResult {
	var metrics []CheckMetric
	passed := true
	var failReasons []string

	countPass := len(written) == loadedRows
	metrics = append(metrics, CheckMetric{
		Name:  "row_count",
		Value: float64(len(written)),
		Pass:  countPass,
	})
	if !countPass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("row count %d != loaded %d", len(written), loadedRows))
	}

	scored := 0
	for _, rec := range written {
		if _, ok := rec.Fields[table.ColTotalScore]; ok {
			scored++
		}
	}
	scorePass := scored == len(written)
	metrics = append(metrics, CheckMetric{
		Name:  "total_score_present",
		Value: float64(scored),
		Pass:  scorePass,
	})
	if !scorePass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("%d of %d rows missing Total_Score", len(written)-scored, len(written)))
	}

	if len(written) > 0 {
		header := headerSet(written[0].Columns)
		kept := 0
		for _, col := range originalColumns {
			if header[col] {
				kept++
			}
		}
		keepPass := kept == len(originalColumns)
		metrics = append(metrics, CheckMetric{
			Name:  "columns_preserved",
			Value: float64(kept),
			Pass:  keepPass,
		})
		if !keepPass {
			passed = false
			failReasons = append(failReasons, fmt.Sprintf("%d original columns dropped", len(originalColumns)-kept))
		}

		stray := 0
		for _, rec := range written {
			for col := range rec.Fields {
				if !header[col] {
					stray++
				}
			}
		}
		rectPass := stray == 0
		metrics = append(metrics, CheckMetric{
			Name:  "rectangular_schema",
			Value: float64(stray),
			Pass:  rectPass,
		})
		if !rectPass {
			passed = false
			failReasons = append(failReasons, fmt.Sprintf("%d fields outside the header", stray))
		}
	}

	reason := "all checks passed"
	if !passed {
		reason = fmt.Sprintf("check failed: %s", failReasons[0])
		if len(failReasons) > 1 {
			reason = fmt.Sprintf("check failed: %d checks: %s", len(failReasons), failReasons[0])
		}
	}

	return CheckResult{
		Passed:  passed,
		Metrics: metrics,
		Reason:  reason,
	}
}
// #endregion harness

// #region helpers
func headerSet(columns []string) map[string]bool {
	set := make(map[string]bool, len(columns))
	for _, c := range columns {
		set[c] = true
	}
	return set
}
// #endregion helpers
