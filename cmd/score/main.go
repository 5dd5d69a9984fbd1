// Command score computes Total_Score for every row of the PDE table
// and writes results.csv. No trainer is invoked and no regression is
// fit: the scoring half of the loop on its own.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/score"
	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/table"
)

// #region main

func main() {
	_ = godotenv.Load()

	input := flag.String("input", envOr("PDEPIPE_INPUT", "PDE.csv"), "input PDE table")
	output := flag.String("output", envOr("PDEPIPE_OUTPUT", "results.csv"), "scored results table")
	flag.Parse()

	records, err := table.Load(*input)
	if err != nil {
		if errors.Is(err, table.ErrMissingInput) {
			fmt.Fprintf(os.Stderr, "ERROR: %s not found. Make sure PDE.csv exists.\n", *input)
			os.Exit(1)
		}
		log.Fatalf("load: %v", err)
	}
	if len(records) == 0 {
		fmt.Printf("No rows found in %s.\n", *input)
		return
	}

	for i := range records {
		total := score.Total(records[i], table.ScoringColumns)
		records[i].Set(table.ColTotalScore, score.FormatValue(total))
	}

	if err := table.Write(*output, records); err != nil {
		log.Fatalf("write: %v", err)
	}
	fmt.Printf("Scored %d PDEs. Results written to %s.\n", len(records), *output)
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
