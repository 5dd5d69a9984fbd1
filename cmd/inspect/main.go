// Command inspect browses the run history database.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/logging"
	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/runlog"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to runs.db")
	last := flag.Int("last", 20, "show N most recent runs")
	runID := flag.String("run", "", "show single run detail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/runs.db [--last N] [--run id] [--json]")
		os.Exit(2)
	}

	store, err := runlog.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *runID != "" {
		if err := runDetailMode(store, *runID, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := runListMode(store, *last, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	RunID     string   `json:"run_id"`
	Status    string   `json:"status"`
	InputPath string   `json:"input_path"`
	RowCount  int      `json:"row_count"`
	StartedAt string   `json:"started_at"`
	RegSlope  *float64 `json:"reg_slope,omitempty"`
	RegPoints *int     `json:"reg_points,omitempty"`
}

func runListMode(store *runlog.Store, last int, jsonOut bool) error {
	runs, err := store.ListRuns(last)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found")
		return nil
	}

	listRows := make([]listRow, len(runs))
	for i, r := range runs {
		listRows[i] = listRow{
			RunID:     r.RunID,
			Status:    r.Status,
			InputPath: r.InputPath,
			RowCount:  r.RowCount,
			StartedAt: r.StartedAt.Format("2006-01-02 15:04:05"),
			RegSlope:  r.RegSlope,
			RegPoints: r.RegPoints,
		}
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(listRows)
	}

	fmt.Printf("%-36s  %-9s  %-19s  %4s  %9s  %6s\n", "RUN", "STATUS", "STARTED", "ROWS", "SLOPE", "POINTS")
	fmt.Println(strings.Repeat("-", 92))
	for _, row := range listRows {
		slope := "-"
		if row.RegSlope != nil {
			slope = fmt.Sprintf("%.4f", *row.RegSlope)
		}
		points := "-"
		if row.RegPoints != nil {
			points = fmt.Sprintf("%d", *row.RegPoints)
		}
		fmt.Printf("%-36s  %-9s  %-19s  %4d  %9s  %6s\n",
			row.RunID, row.Status, row.StartedAt, row.RowCount, slope, points)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailOut struct {
	Run         runlog.RunRecord          `json:"run"`
	Invocations []logging.InvocationEntry `json:"invocations"`
}

func runDetailMode(store *runlog.Store, runID string, jsonOut bool) error {
	run, err := store.GetRun(runID)
	if err != nil {
		return err
	}
	invocations, err := logging.ListInvocations(store.DB(), runID)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(detailOut{Run: run, Invocations: invocations})
	}

	fmt.Printf("run:      %s\n", run.RunID)
	fmt.Printf("status:   %s\n", run.Status)
	fmt.Printf("input:    %s\n", run.InputPath)
	if run.OutputPath != "" {
		fmt.Printf("output:   %s\n", run.OutputPath)
	}
	fmt.Printf("rows:     %d\n", run.RowCount)
	fmt.Printf("started:  %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	if !run.FinishedAt.IsZero() {
		fmt.Printf("finished: %s\n", run.FinishedAt.Format("2006-01-02 15:04:05"))
	}
	if run.RegSlope != nil && run.RegIntercept != nil && run.RegPoints != nil {
		fmt.Printf("fit:      y = %.4f * x + %.4f (%d points)\n", *run.RegSlope, *run.RegIntercept, *run.RegPoints)
	} else {
		fmt.Println("fit:      insufficient data")
	}

	if len(invocations) == 0 {
		return nil
	}
	fmt.Printf("\n%-20s  %-24s  %-7s  %10s  %10s\n", "RECORD", "MODULE", "OUTCOME", "SCORE", "ERROR")
	fmt.Println(strings.Repeat("-", 80))
	for _, inv := range invocations {
		module := inv.TrainerModule
		if module == "" {
			module = "-"
		}
		scoreStr := "-"
		if inv.TotalScore != nil {
			scoreStr = fmt.Sprintf("%.4f", *inv.TotalScore)
		}
		errStr := "-"
		if inv.L3Error != nil {
			errStr = fmt.Sprintf("%.4g", *inv.L3Error)
		}
		fmt.Printf("%-20s  %-24s  %-7s  %10s  %10s\n",
			inv.RecordName, module, inv.Outcome, scoreStr, errStr)
	}
	return nil
}

// #endregion detail-mode
