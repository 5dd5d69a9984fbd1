// Command replay recomputes the regression for a recorded run from
// its logged (score, error) points and compares against the stored
// fit. Exit status 1 when they diverge.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/replay"
	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/runlog"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to runs.db")
	runID := flag.String("run", "", "run to replay (default: most recent)")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/runs.db [--run id]")
		os.Exit(2)
	}

	store, err := runlog.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(2)
	}
	defer store.Close()

	id := *runID
	if id == "" {
		runs, err := store.ListRuns(1)
		if err != nil {
			fmt.Fprintf(os.Stderr, "list runs: %v\n", err)
			os.Exit(2)
		}
		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "no runs found")
			os.Exit(2)
		}
		id = runs[0].RunID
	}

	result, err := replay.Replay(store, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(2)
	}

	fmt.Println(result.Describe())
	if result.Recorded != nil {
		fmt.Printf("recorded:   %s\n", result.Recorded.Line())
	}
	if result.Recomputed != nil {
		fmt.Printf("recomputed: %s\n", result.Recomputed.Line())
	}
	if !result.Match {
		os.Exit(1)
	}
}

// #endregion main
