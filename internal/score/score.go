// Package score derives the per-record complexity score and collects
// observed error values. All functions are pure: no IO, deterministic,
// total on any record.
package score

import (
	"strconv"
	"strings"

	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/table"
)

// #region parse
// ParseFloat converts field text to a number. Reports ok=false for
// empty or unparsable text; it never errors.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
// #endregion parse

// #region total
// Total sums the named columns of a record. A missing column, empty
// cell, or unparsable value contributes exactly 0.0; the coercion is
// silent.
func Total(rec table.Record, columns []string) float64 {
	var total float64
	for _, col := range columns {
		if v, ok := ParseFloat(rec.Get(col)); ok {
			total += v
		}
	}
	return total
}
// #endregion total

// #region collect-error
// CollectError returns the record's L3_Error as a number, or ok=false
// when the error is not yet known (absent, blank, or unparsable).
//
// This is the seam for obtaining a fresh error from trainer output:
// a future collector can read the trainer's artifacts here instead of
// trusting the pre-populated column.
func CollectError(rec table.Record) (float64, bool) {
	return ParseFloat(rec.Get(table.ColL3Error))
}
// #endregion collect-error

// #region format
// FormatValue renders a computed numeric field the way it is stored
// back into a record.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
// #endregion format
