package integration

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xvierd/countdown-cli/internal/adapters/scheduler"
	"github.com/xvierd/countdown-cli/internal/adapters/storage"
	"github.com/xvierd/countdown-cli/internal/domain"
	"github.com/xvierd/countdown-cli/internal/ports"
	"github.com/xvierd/countdown-cli/internal/services"
)

// setupTestStorage creates a temporary database for integration tests
func setupTestStorage(t *testing.T) (ports.Storage, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := storage.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store, dbPath
}

func newTimer(store ports.Storage) (*services.TimerService, *scheduler.Manual) {
	sched := scheduler.NewManual()
	svc := services.NewTimerService(domain.NewTimer(domain.DefaultOptions()), sched, store.Runs(), nil)
	return svc, sched
}

// TestCountdownLifecycle runs countdowns to expiry and reset and checks what
// lands in history.
func TestCountdownLifecycle(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()
	svc, sched := newTimer(store)
	history := services.NewHistoryService(store)

	t.Run("expired run", func(t *testing.T) {
		snap, err := svc.Start(ctx, "00:03")
		if err != nil {
			t.Fatalf("failed to start: %v", err)
		}
		if snap.Phase != domain.PhaseRunning {
			t.Fatalf("expected running, got %v", snap.Phase)
		}

		sched.Advance(2)
		snap, err = svc.Pause(ctx)
		if err != nil {
			t.Fatalf("failed to pause: %v", err)
		}
		if snap.RemainingSeconds != 1 {
			t.Errorf("expected 1s remaining, got %d", snap.RemainingSeconds)
		}

		sched.Advance(5)
		if got := svc.Snapshot().RemainingSeconds; got != 1 {
			t.Errorf("paused timer moved to %d", got)
		}

		if _, err := svc.Resume(ctx); err != nil {
			t.Fatalf("failed to resume: %v", err)
		}
		sched.Advance(2)

		snap = svc.Snapshot()
		if snap.Phase != domain.PhaseExpired {
			t.Fatalf("expected expired, got %v", snap.Phase)
		}
		if snap.InputLocked {
			t.Error("expiry should unlock the input")
		}
		if sched.Live() != 0 {
			t.Errorf("expected no live ticks, got %d", sched.Live())
		}
	})

	t.Run("reset run", func(t *testing.T) {
		if _, err := svc.Reset(ctx); err != nil {
			t.Fatalf("failed to reset after expiry: %v", err)
		}
		if _, err := svc.Start(ctx, "1:00"); err != nil {
			t.Fatalf("failed to start: %v", err)
		}
		sched.Advance(15)

		snap, err := svc.Reset(ctx)
		if err != nil {
			t.Fatalf("failed to reset: %v", err)
		}
		if snap.Display != "01:00" {
			t.Errorf("expected display 01:00, got %q", snap.Display)
		}
	})

	svc.Close()

	t.Run("history", func(t *testing.T) {
		runs, err := history.Recent(ctx, 10)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("expected 2 runs, got %d", len(runs))
		}

		outcomes := map[domain.RunOutcome]*domain.Run{}
		for _, r := range runs {
			outcomes[r.Outcome] = r
		}
		if r := outcomes[domain.RunOutcomeExpired]; r == nil || r.ElapsedSeconds() != 3 {
			t.Errorf("expected an expired run of 3s, got %+v", r)
		}
		if r := outcomes[domain.RunOutcomeReset]; r == nil || r.ElapsedSeconds() != 15 {
			t.Errorf("expected a reset run with 15s counted, got %+v", r)
		}

		stats, err := history.Stats(ctx, "all")
		if err != nil {
			t.Fatalf("failed to compute stats: %v", err)
		}
		if stats.TotalRuns != 2 || stats.Expired != 1 || stats.Reset != 1 {
			t.Errorf("unexpected stats: %+v", stats)
		}
		if stats.CountedSeconds != 18 {
			t.Errorf("expected 18 counted seconds, got %d", stats.CountedSeconds)
		}
	})

	t.Run("export", func(t *testing.T) {
		var buf bytes.Buffer
		if err := history.Export(ctx, &buf, services.ExportCSV, "all"); err != nil {
			t.Fatalf("failed to export: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 3 {
			t.Errorf("expected header and 2 rows, got %d lines", len(lines))
		}
	})
}

// TestRejectedCommandsLeaveNoHistory checks that invalid input and hidden
// controls change nothing that is persisted.
func TestRejectedCommandsLeaveNoHistory(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()
	svc, sched := newTimer(store)
	defer svc.Close()

	if _, err := svc.Start(ctx, "00:00"); err == nil {
		t.Error("zero duration should be rejected")
	}
	if _, err := svc.Pause(ctx); err == nil {
		t.Error("pause from idle should be rejected")
	}
	if _, err := svc.Reset(ctx); err == nil {
		t.Error("reset from idle should be rejected")
	}
	if sched.Created() != 0 {
		t.Errorf("no tick should have been scheduled, got %d", sched.Created())
	}

	runs, err := store.Runs().FindRecent(ctx, time.Time{}, 0)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

// TestNotesPersistAcrossReopen checks the notes blob survives closing the
// database.
func TestNotesPersistAcrossReopen(t *testing.T) {
	ctx := context.Background()
	store, dbPath := setupTestStorage(t)

	notes := services.NewNotesService(store)
	if err := notes.Set(ctx, "buy eggs"); err != nil {
		t.Fatalf("failed to save notes: %v", err)
	}
	store.Close()

	reopened, err := storage.New(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen storage: %v", err)
	}
	defer reopened.Close()

	notes = services.NewNotesService(reopened)
	saved, err := notes.HasSaved(ctx)
	if err != nil || !saved {
		t.Fatalf("expected saved notes, got saved=%v err=%v", saved, err)
	}
	text, err := notes.Get(ctx)
	if err != nil {
		t.Fatalf("failed to load notes: %v", err)
	}
	if text != "buy eggs" {
		t.Errorf("expected %q, got %q", "buy eggs", text)
	}

	if err := notes.Set(ctx, "   "); err != nil {
		t.Fatalf("failed to clear notes: %v", err)
	}
	if saved, _ := notes.HasSaved(ctx); saved {
		t.Error("blank notes should clear the store")
	}
}

// TestStateServiceOverStorage drives the programmatic surface end to end.
func TestStateServiceOverStorage(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()
	svc, sched := newTimer(store)

	state := services.NewStateService(svc, services.NewNotesService(store), services.NewHistoryService(store))

	if _, err := state.ApplyShortcut(ctx, 3); err != nil {
		t.Fatalf("failed to apply shortcut: %v", err)
	}
	snap, err := state.StartTimer(ctx, "")
	if err != nil {
		t.Fatalf("failed to start: %v", err)
	}
	if snap.InitialSeconds != 30 {
		t.Errorf("expected the Quick preset (30s), got %d", snap.InitialSeconds)
	}

	sched.Advance(31)
	svc.Close()

	runs, err := state.GetRecentRuns(ctx, 5)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 1 || runs[0].Outcome != domain.RunOutcomeExpired {
		t.Errorf("expected one expired run, got %+v", runs)
	}
}
