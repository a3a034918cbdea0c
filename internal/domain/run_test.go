package domain

import (
	"testing"
	"time"
)

func TestNewRun(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Second)

	run := NewRun(120, 30, RunOutcomeReset, start, end)

	if run.ID == "" {
		t.Error("NewRun() should assign an ID")
	}
	if run.ElapsedSeconds() != 90 {
		t.Errorf("ElapsedSeconds() = %d, want 90", run.ElapsedSeconds())
	}
	if run.Outcome != RunOutcomeReset {
		t.Errorf("Outcome = %v, want reset", run.Outcome)
	}

	other := NewRun(120, 0, RunOutcomeExpired, start, end)
	if other.ID == run.ID {
		t.Error("run IDs should be unique")
	}
}

func TestRun_SetGitContext(t *testing.T) {
	run := NewRun(60, 0, RunOutcomeExpired, time.Now(), time.Now())
	run.SetGitContext("main", "abc1234")

	if run.GitBranch != "main" || run.GitCommit != "abc1234" {
		t.Errorf("git context = %s/%s, want main/abc1234", run.GitBranch, run.GitCommit)
	}
}

func TestGetOutcomeLabel(t *testing.T) {
	tests := []struct {
		outcome RunOutcome
		want    string
	}{
		{RunOutcomeExpired, "Completed"},
		{RunOutcomeReset, "Reset"},
		{"other", "Unknown"},
	}
	for _, tt := range tests {
		if got := GetOutcomeLabel(tt.outcome); got != tt.want {
			t.Errorf("GetOutcomeLabel(%v) = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}
