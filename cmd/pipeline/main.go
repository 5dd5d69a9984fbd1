// Command pipeline runs the full PDE complexity loop: load PDE.csv,
// score each row, run each row's trainer module, collect error values,
// write results.csv, and fit the error-vs-score regression.
//
// Run it from the go-pipeline directory so the default paths resolve:
// the CSVs live next to the binary's working directory and the repo
// root (one level up) is where trainer modules are importable from.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/pipeline"
	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/runlog"
	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/table"
	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/trainer"
)

// #region main

func main() {
	_ = godotenv.Load()

	input := flag.String("input", envOr("PDEPIPE_INPUT", "PDE.csv"), "input PDE table")
	output := flag.String("output", envOr("PDEPIPE_OUTPUT", "results.csv"), "augmented results table")
	regPath := flag.String("regression", envOr("PDEPIPE_REGRESSION", "regression.txt"), "regression summary artifact")
	dbPath := flag.String("db", envOr("PDEPIPE_DB", "runs.db"), "run history database (empty disables recording)")
	python := flag.String("python", envOr("PDEPIPE_PYTHON", "python3"), "interpreter for trainer modules")
	repoRoot := flag.String("root", envOr("PDEPIPE_ROOT", ".."), "repo root; trainers run with this as cwd")
	flag.Parse()

	var store *runlog.Store
	if *dbPath != "" {
		s, err := runlog.NewStore(*dbPath)
		if err != nil {
			log.Printf("run recording disabled: %v", err)
		} else {
			store = s
			defer store.Close()
		}
	}

	cfg := pipeline.Config{
		InputPath:      *input,
		OutputPath:     *output,
		RegressionPath: *regPath,
		Invoker:        trainer.NewExecInvoker(*python, *repoRoot),
		Store:          store,
	}

	outcome, err := pipeline.Run(context.Background(), cfg)
	if err != nil {
		if errors.Is(err, table.ErrMissingInput) {
			fmt.Fprintf(os.Stderr, "ERROR: %s not found. Make sure PDE.csv exists.\n", *input)
			os.Exit(1)
		}
		log.Fatalf("pipeline: %v", err)
	}

	if store != nil && outcome.RunID != "" {
		fmt.Printf("Recorded run %s\n", outcome.RunID)
	}
}

// #endregion main

// #region helpers

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
