package logging

import (
	"path/filepath"
	"testing"

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

func TestLogAndListInvocations(t *testing.T) {
	s := tempStore(t)
	run, err := s.BeginRun("PDE.csv")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	score := 3.0
	l3 := 0.042
	entries := []InvocationEntry{
		{RunID: run.RunID, RecordName: "heat", TrainerModule: "src.trainers.heat", Outcome: OutcomeDone, TotalScore: &score, L3Error: &l3, DurationMs: 1200},
		{RunID: run.RunID, RecordName: "laplace", Outcome: OutcomeSkip, TotalScore: &score},
	}
	for _, e := range entries {
		if err := LogInvocation(s.DB(), e); err != nil {
			t.Fatalf("LogInvocation: %v", err)
		}
	}

	got, err := ListInvocations(s.DB(), run.RunID)
	if err != nil {
		t.Fatalf("ListInvocations: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}

	if got[0].RecordName != "heat" || got[0].Outcome != OutcomeDone {
		t.Fatalf("unexpected first entry: %+v", got[0])
	}
	if got[0].L3Error == nil || *got[0].L3Error != 0.042 {
		t.Fatalf("expected l3 0.042, got %v", got[0].L3Error)
	}
	if got[0].DurationMs != 1200 {
		t.Fatalf("expected 1200ms, got %d", got[0].DurationMs)
	}
	if got[0].CreatedAt.IsZero() {
		t.Fatal("expected created_at stamped")
	}

	// Skip entry: module and error stay NULL
	if got[1].TrainerModule != "" {
		t.Fatalf("expected empty module, got %s", got[1].TrainerModule)
	}
	if got[1].L3Error != nil {
		t.Fatal("expected nil L3Error for skip")
	}
	if got[1].ExitCode != nil {
		t.Fatal("expected nil exit code")
	}
}

func TestLogInvocationExitCode(t *testing.T) {
	s := tempStore(t)
	run, _ := s.BeginRun("PDE.csv")

	code := 3
	e := InvocationEntry{RunID: run.RunID, RecordName: "heat", TrainerModule: "src.trainers.heat", Outcome: OutcomeFail, ExitCode: &code}
	if err := LogInvocation(s.DB(), e); err != nil {
		t.Fatalf("LogInvocation: %v", err)
	}

	got, err := ListInvocations(s.DB(), run.RunID)
	if err != nil {
		t.Fatalf("ListInvocations: %v", err)
	}
	if got[0].ExitCode == nil || *got[0].ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %v", got[0].ExitCode)
	}
}

func TestListInvocationsEmptyRun(t *testing.T) {
	s := tempStore(t)
	run, _ := s.BeginRun("PDE.csv")

	got, err := ListInvocations(s.DB(), run.RunID)
	if err != nil {
		t.Fatalf("ListInvocations: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no entries, got %d", len(got))
	}
}
