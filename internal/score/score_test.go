package score

import (
	"math"
	"testing"

	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/table"
)

func record(fields map[string]string) table.Record {
	cols := make([]string, 0, len(fields))
	for k := range fields {
		cols = append(cols, k)
	}
	rec := table.NewRecord(cols)
	for k, v := range fields {
		rec.Fields[k] = v
	}
	return rec
}

func TestTotalCoercesMissingAndBadToZero(t *testing.T) {
	rec := record(map[string]string{
		"Dimensionality": "2",
		"Nonlinearity":   "1",
		"Boundary":       "",
		"Time":           "0",
		"Coupling":       "abc",
	})

	got := Total(rec, table.ScoringColumns)
	if got != 3.0 {
		t.Fatalf("expected 3.0, got %f", got)
	}
}

func TestTotalMissingColumns(t *testing.T) {
	rec := record(map[string]string{"Name": "heat"})
	if got := Total(rec, table.ScoringColumns); got != 0.0 {
		t.Fatalf("expected 0.0 on all-missing columns, got %f", got)
	}
}

func TestTotalNegativeAndFractional(t *testing.T) {
	rec := record(map[string]string{
		"Dimensionality": "1.5",
		"Nonlinearity":   "-0.5",
	})
	if got := Total(rec, table.ScoringColumns); got != 1.0 {
		t.Fatalf("expected 1.0, got %f", got)
	}
}

func TestParseFloat(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"2", 2, true},
		{" 2.5 ", 2.5, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1e-3", 0.001, true},
	}
	for _, c := range cases {
		got, ok := ParseFloat(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("ParseFloat(%q) = %f, %v; expected %f, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestCollectError(t *testing.T) {
	rec := record(map[string]string{"L3_Error": "0.042"})
	v, ok := CollectError(rec)
	if !ok || v != 0.042 {
		t.Fatalf("expected 0.042, got %f, %v", v, ok)
	}

	blank := record(map[string]string{"L3_Error": ""})
	if _, ok := CollectError(blank); ok {
		t.Fatal("expected not-yet-known for blank L3_Error")
	}

	absent := record(map[string]string{"Name": "heat"})
	if _, ok := CollectError(absent); ok {
		t.Fatal("expected not-yet-known for absent L3_Error")
	}
}

func TestCollectErrorNaNParsesAsNaN(t *testing.T) {
	// NaN parses; the regression point filter excludes it downstream.
	rec := record(map[string]string{"L3_Error": "NaN"})
	v, ok := CollectError(rec)
	if !ok || !math.IsNaN(v) {
		t.Fatalf("expected parsed NaN, got %f, %v", v, ok)
	}
}

func TestFormatValue(t *testing.T) {
	if got := FormatValue(3.0); got != "3" {
		t.Fatalf("expected 3, got %q", got)
	}
	if got := FormatValue(0.042); got != "0.042" {
		t.Fatalf("expected 0.042, got %q", got)
	}
}
