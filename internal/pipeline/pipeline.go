// Package pipeline wires the stages of a run: load, score, train,
// collect, write, fit. Everything is sequential and single-threaded;
// records are processed strictly in file order.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/check"
	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/logging"
	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/regress"
	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/runlog"
	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/score"
	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/table"
	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/trainer"
)

// #region config
// Config carries every path and collaborator a run needs; there is no
// global configuration.
type Config struct {
	InputPath      string
	OutputPath     string
	RegressionPath string

	// ScoringColumns defaults to table.ScoringColumns when empty.
	ScoringColumns []string

	// Invoker runs external trainers. Nil disables the trainer stage
	// (records with a TrainerModule are still scored).
	Invoker trainer.Invoker

	// Store records run history. Nil disables recording; recording
	// failures are logged, never fatal.
	Store *runlog.Store
}

func (c Config) scoringColumns() []string {
	if len(c.ScoringColumns) > 0 {
		return c.ScoringColumns
	}
	return table.ScoringColumns
}
// #endregion config

// #region outcome
// Outcome summarizes a completed run.
type Outcome struct {
	RunID    string
	Empty    bool // input had no data rows; nothing was written
	RowCount int

	// Regression is nil when there were not enough valid points.
	Regression *regress.Result
}
// #endregion outcome

// #region run
// Run executes the full pipeline. A missing input file surfaces as
// table.ErrMissingInput; a failing trainer aborts before the Writer
// stage, so a mid-run failure leaves no output files.
func Run(ctx context.Context, cfg Config) (Outcome, error) {
	records, err := table.Load(cfg.InputPath)
	if err != nil {
		return Outcome{}, err
	}
	if len(records) == 0 {
		fmt.Printf("No rows found in %s.\n", cfg.InputPath)
		return Outcome{Empty: true}, nil
	}
	fmt.Printf("Loaded %d PDEs from %s.\n", len(records), cfg.InputPath)
	originalColumns := append([]string(nil), records[0].Columns...)

	runID := beginRun(cfg)
	out := Outcome{RunID: runID, RowCount: len(records)}

	for i := range records {
		rec := &records[i]

		total := score.Total(*rec, cfg.scoringColumns())
		rec.Set(table.ColTotalScore, score.FormatValue(total))

		entry := logging.InvocationEntry{
			RunID:      runID,
			RecordName: rec.Name(),
			TotalScore: &total,
		}

		module := strings.TrimSpace(rec.Get(table.ColTrainerModule))
		if module == "" || cfg.Invoker == nil {
			if module == "" {
				fmt.Printf("[SKIP] %s: no TrainerModule specified.\n", rec.Name())
			}
			entry.Outcome = logging.OutcomeSkip
		} else {
			entry.TrainerModule = module
			fmt.Printf("\n=== Running trainer for %s (%s) ===\n", rec.Name(), module)

			start := time.Now()
			err := cfg.Invoker.Run(ctx, module)
			entry.DurationMs = time.Since(start).Milliseconds()

			if err != nil {
				entry.Outcome = logging.OutcomeFail
				if execErr, ok := err.(*trainer.ExecError); ok {
					entry.ExitCode = &execErr.ExitCode
				}
				logInvocation(cfg, entry)
				finishRun(cfg, runID, runlog.RunOutcome{Status: runlog.StatusFailed, RowCount: len(records)})
				return out, err
			}
			entry.Outcome = logging.OutcomeDone
			fmt.Printf("[DONE] Trainer finished for %s\n", rec.Name())
		}

		if v, ok := score.CollectError(*rec); ok {
			rec.Set(table.ColL3Error, score.FormatValue(v))
			entry.L3Error = &v
		}
		logInvocation(cfg, entry)
	}

	if err := table.Write(cfg.OutputPath, records); err != nil {
		finishRun(cfg, runID, runlog.RunOutcome{Status: runlog.StatusFailed, RowCount: len(records)})
		return out, err
	}
	fmt.Printf("\nWrote scored results to %s\n", cfg.OutputPath)

	if res := check.Run(len(records), originalColumns, records); !res.Passed {
		log.Printf("output validation: %s", res.Reason)
	}

	points := CollectPoints(records)
	result, ok := regress.Fit(points)
	finish := runlog.RunOutcome{
		Status:     runlog.StatusCompleted,
		OutputPath: cfg.OutputPath,
		RowCount:   len(records),
	}
	if !ok {
		fmt.Println("Not enough valid (score, error) pairs for regression.")
		finishRun(cfg, runID, finish)
		return out, nil
	}

	fmt.Println("\n" + result.Line())
	if err := result.WriteArtifact(cfg.RegressionPath); err != nil {
		finishRun(cfg, runID, runlog.RunOutcome{Status: runlog.StatusFailed, RowCount: len(records)})
		return out, err
	}
	fmt.Printf("Saved regression info to %s\n", cfg.RegressionPath)

	out.Regression = &result
	finish.RegSlope = &result.Slope
	finish.RegIntercept = &result.Intercept
	finish.RegPoints = &result.Points
	finishRun(cfg, runID, finish)
	return out, nil
}
// #endregion run

// #region points
// CollectPoints extracts (Total_Score, L3_Error) pairs from records
// where both parse and the error is not NaN.
func CollectPoints(records []table.Record) []regress.Point {
	var points []regress.Point
	for _, rec := range records {
		x, okX := score.ParseFloat(rec.Get(table.ColTotalScore))
		y, okY := score.ParseFloat(rec.Get(table.ColL3Error))
		if okX && okY && !math.IsNaN(y) {
			points = append(points, regress.Point{Score: x, Error: y})
		}
	}
	return points
}
// #endregion points

// #region runlog-helpers
// Run recording is best-effort: a runlog failure never changes the
// pipeline's outcome.
func beginRun(cfg Config) string {
	if cfg.Store == nil {
		return ""
	}
	rec, err := cfg.Store.BeginRun(cfg.InputPath)
	if err != nil {
		log.Printf("runlog: begin run: %v", err)
		return ""
	}
	return rec.RunID
}

func logInvocation(cfg Config, entry logging.InvocationEntry) {
	if cfg.Store == nil || entry.RunID == "" {
		return
	}
	if err := logging.LogInvocation(cfg.Store.DB(), entry); err != nil {
		log.Printf("runlog: %v", err)
	}
}

func finishRun(cfg Config, runID string, out runlog.RunOutcome) {
	if cfg.Store == nil || runID == "" {
		return
	}
	if err := cfg.Store.FinishRun(runID, out); err != nil {
		log.Printf("runlog: finish run: %v", err)
	}
}
// #endregion runlog-helpers
