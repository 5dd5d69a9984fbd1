package replay

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/logging"
	"github.com/danielpatrickdp/pde-complexity/go-pipeline/internal/runlog"
)

func tempStore(t *testing.T) *runlog.Store {
	t.Helper()
	s, err := runlog.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func recordRun(t *testing.T, s *runlog.Store, points [][2]float64, out runlog.RunOutcome) string {
	t.Helper()
	run, err := s.BeginRun("PDE.csv")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	for _, p := range points {
		score, l3 := p[0], p[1]
		entry := logging.InvocationEntry{
			RunID:      run.RunID,
			RecordName: "pde",
			Outcome:    logging.OutcomeSkip,
			TotalScore: &score,
			L3Error:    &l3,
		}
		if err := logging.LogInvocation(s.DB(), entry); err != nil {
			t.Fatalf("LogInvocation: %v", err)
		}
	}
	out.RowCount = len(points)
	if err := s.FinishRun(run.RunID, out); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}
	return run.RunID
}

func TestReplayMatchesRecordedFit(t *testing.T) {
	s := tempStore(t)
	slope, intercept := 2.0, 0.0
	n := 3
	runID := recordRun(t, s, [][2]float64{{1, 2}, {2, 4}, {3, 6}}, runlog.RunOutcome{
		Status:       runlog.StatusCompleted,
		RegSlope:     &slope,
		RegIntercept: &intercept,
		RegPoints:    &n,
	})

	res, err := Replay(s, runID)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if !res.Match {
		t.Fatalf("expected match: %s", res.Describe())
	}
	if res.Points != 3 {
		t.Fatalf("expected 3 points, got %d", res.Points)
	}
	if res.Recomputed == nil || math.Abs(res.Recomputed.Slope-2.0) > 1e-9 {
		t.Fatalf("unexpected recomputed fit: %+v", res.Recomputed)
	}
}

func TestReplayDetectsDivergence(t *testing.T) {
	s := tempStore(t)
	slope, intercept := 5.0, 1.0 // stored fit disagrees with logged points
	n := 3
	runID := recordRun(t, s, [][2]float64{{1, 2}, {2, 4}, {3, 6}}, runlog.RunOutcome{
		Status:       runlog.StatusCompleted,
		RegSlope:     &slope,
		RegIntercept: &intercept,
		RegPoints:    &n,
	})

	res, err := Replay(s, runID)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if res.Match {
		t.Fatal("expected divergence")
	}
}

func TestReplayInsufficientDataBothWays(t *testing.T) {
	s := tempStore(t)
	runID := recordRun(t, s, nil, runlog.RunOutcome{Status: runlog.StatusCompleted})

	res, err := Replay(s, runID)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if !res.Match {
		t.Fatal("expected match when both fits are absent")
	}
	if res.Recorded != nil || res.Recomputed != nil {
		t.Fatal("expected no fits")
	}
}

func TestReplayUnknownRun(t *testing.T) {
	s := tempStore(t)
	if _, err := Replay(s, "nonexistent-id"); err == nil {
		t.Fatal("expected error for unknown run")
	}
}
