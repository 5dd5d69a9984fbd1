package logging

import "time"

// #region outcomes
// Invocation outcomes recorded in the invocation_log table.
const (
	OutcomeDone = "done"
	OutcomeSkip = "skip" // no TrainerModule on the record
	OutcomeFail = "failed"
)
// #endregion outcomes

// #region invocation-entry
// InvocationEntry is a single row in the invocation_log table: one
// record's trip through the scorer and the trainer boundary.
type InvocationEntry struct {
	RunID         string
	RecordName    string
	TrainerModule string
	Outcome       string // "done" | "skip" | "failed"
	ExitCode      *int
	TotalScore    *float64
	L3Error       *float64
	DurationMs    int64
	CreatedAt     time.Time
}
// #endregion invocation-entry
