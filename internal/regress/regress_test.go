package regress

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestFitPerfectLine(t *testing.T) {
	points := []Point{{1, 2}, {2, 4}, {3, 6}}

	res, ok := Fit(points)
	if !ok {
		t.Fatal("expected a fit")
	}
	if math.Abs(res.Slope-2.0) > 1e-9 {
		t.Fatalf("expected slope 2.0, got %f", res.Slope)
	}
	if math.Abs(res.Intercept) > 1e-9 {
		t.Fatalf("expected intercept 0.0, got %f", res.Intercept)
	}
	if res.Points != 3 {
		t.Fatalf("expected 3 points, got %d", res.Points)
	}
}

func TestFitEmptyIsInsufficient(t *testing.T) {
	if _, ok := Fit(nil); ok {
		t.Fatal("expected insufficient data for empty point set")
	}
}

func TestFitZeroVarianceIsInsufficient(t *testing.T) {
	points := []Point{{5, 1}, {5, 2}, {5, 3}}
	if _, ok := Fit(points); ok {
		t.Fatal("expected insufficient data for identical x values")
	}
}

func TestFitSinglePointIsInsufficient(t *testing.T) {
	if _, ok := Fit([]Point{{1, 2}}); ok {
		t.Fatal("expected insufficient data for a single point")
	}
}

func TestFitNoisyLine(t *testing.T) {
	points := []Point{{1, 2.1}, {2, 3.9}, {3, 6.2}, {4, 7.8}}
	res, ok := Fit(points)
	if !ok {
		t.Fatal("expected a fit")
	}
	if res.Slope <= 0 {
		t.Fatalf("expected positive slope, got %f", res.Slope)
	}
}

func TestSummaryFormat(t *testing.T) {
	res := Result{Slope: 2, Intercept: 0, Points: 3}

	wantLine := "Linear regression (Error vs Total_Score):  y = 2.0000 * x + 0.0000"
	if res.Line() != wantLine {
		t.Fatalf("expected %q, got %q", wantLine, res.Line())
	}

	want := wantLine + "\nUsed 3 points.\n"
	if res.Summary() != want {
		t.Fatalf("expected %q, got %q", want, res.Summary())
	}
}

func TestWriteArtifact(t *testing.T) {
	res := Result{Slope: 0.5, Intercept: -1.25, Points: 7}
	path := filepath.Join(t.TempDir(), "regression.txt")

	if err := res.WriteArtifact(path); err != nil {
		t.Fatalf("WriteArtifact: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	want := "Linear regression (Error vs Total_Score):  y = 0.5000 * x + -1.2500\nUsed 7 points.\n"
	if string(data) != want {
		t.Fatalf("expected %q, got %q", want, string(data))
	}
}
