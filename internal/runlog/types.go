package runlog

import "time"

// #region run-status
// Run statuses recorded in the runs table.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusEmpty     = "empty" // input had a header but no data rows
)
// #endregion run-status

// #region run-record
// RunRecord is one pipeline run in the runs table. Regression fields
// are nil when the run ended with insufficient data (or did not reach
// the fit).
type RunRecord struct {
	RunID      string
	InputPath  string
	OutputPath string
	Status     string
	RowCount   int
	StartedAt  time.Time
	FinishedAt time.Time

	RegSlope     *float64
	RegIntercept *float64
	RegPoints    *int
}
// #endregion run-record

// #region run-outcome
// RunOutcome carries the terminal facts of a run into FinishRun.
type RunOutcome struct {
	Status     string
	OutputPath string
	RowCount   int

	RegSlope     *float64
	RegIntercept *float64
	RegPoints    *int
}
// #endregion run-outcome
