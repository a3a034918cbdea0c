package ports

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/xvierd/countdown-cli/internal/domain"
)

// Mock implementations for testing interfaces.

type mockNotesRepository struct {
	notes map[string]*domain.Note
}

func (m *mockNotesRepository) Get(ctx context.Context, key string) (*domain.Note, error) {
	note, ok := m.notes[key]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	return note, nil
}

func (m *mockNotesRepository) Set(ctx context.Context, note *domain.Note) error {
	m.notes[note.Key] = note
	return nil
}

func (m *mockNotesRepository) Delete(ctx context.Context, key string) error {
	delete(m.notes, key)
	return nil
}

type mockRunRepository struct {
	runs map[string]*domain.Run
}

func (m *mockRunRepository) Save(ctx context.Context, run *domain.Run) error {
	m.runs[run.ID] = run
	return nil
}

func (m *mockRunRepository) FindByID(ctx context.Context, id string) (*domain.Run, error) {
	run, ok := m.runs[id]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	return run, nil
}

func (m *mockRunRepository) FindRecent(ctx context.Context, since time.Time, limit int) ([]*domain.Run, error) {
	var result []*domain.Run
	for _, run := range m.runs {
		if !run.StartedAt.Before(since) {
			result = append(result, run)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartedAt.After(result[j].StartedAt) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockRunRepository) GetStats(ctx context.Context, since time.Time) (*domain.RunStats, error) {
	stats := &domain.RunStats{Since: since}
	runs, _ := m.FindRecent(ctx, since, 0)
	for _, run := range runs {
		stats.TotalRuns++
		stats.CountedSeconds += run.ElapsedSeconds()
		if run.Outcome == domain.RunOutcomeExpired {
			stats.Expired++
		} else {
			stats.Reset++
		}
	}
	return stats, nil
}

var (
	_ NotesRepository = (*mockNotesRepository)(nil)
	_ RunRepository   = (*mockRunRepository)(nil)
)

func TestMockNotesRepository(t *testing.T) {
	repo := &mockNotesRepository{notes: make(map[string]*domain.Note)}
	ctx := context.Background()

	t.Run("get missing note", func(t *testing.T) {
		_, err := repo.Get(ctx, domain.NotesKey)
		if !errors.Is(err, domain.ErrNoteNotFound) {
			t.Errorf("Get() error = %v, want ErrNoteNotFound", err)
		}
	})

	t.Run("set and get note", func(t *testing.T) {
		err := repo.Set(ctx, &domain.Note{Key: domain.NotesKey, Body: "buy milk"})
		if err != nil {
			t.Errorf("Set() error = %v", err)
		}
		note, err := repo.Get(ctx, domain.NotesKey)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if note.Body != "buy milk" {
			t.Errorf("Body = %q, want %q", note.Body, "buy milk")
		}
	})

	t.Run("delete note", func(t *testing.T) {
		if err := repo.Delete(ctx, domain.NotesKey); err != nil {
			t.Errorf("Delete() error = %v", err)
		}
		if err := repo.Delete(ctx, domain.NotesKey); err != nil {
			t.Errorf("second Delete() error = %v", err)
		}
	})
}

func TestMockRunRepository(t *testing.T) {
	repo := &mockRunRepository{runs: make(map[string]*domain.Run)}
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	first := domain.NewRun(60, 0, domain.RunOutcomeExpired, base, base.Add(time.Minute))
	second := domain.NewRun(300, 200, domain.RunOutcomeReset, base.Add(time.Hour), base.Add(time.Hour+100*time.Second))
	for _, run := range []*domain.Run{first, second} {
		if err := repo.Save(ctx, run); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	t.Run("recent runs newest first", func(t *testing.T) {
		runs, err := repo.FindRecent(ctx, base, 0)
		if err != nil {
			t.Fatalf("FindRecent() error = %v", err)
		}
		if len(runs) != 2 || runs[0].ID != second.ID {
			t.Errorf("FindRecent() = %v, want newest first", runs)
		}
	})

	t.Run("stats", func(t *testing.T) {
		stats, err := repo.GetStats(ctx, base)
		if err != nil {
			t.Fatalf("GetStats() error = %v", err)
		}
		if stats.TotalRuns != 2 || stats.Expired != 1 || stats.Reset != 1 {
			t.Errorf("stats = %+v", stats)
		}
		if stats.CountedSeconds != 160 {
			t.Errorf("CountedSeconds = %d, want 160", stats.CountedSeconds)
		}
	})

	t.Run("find missing run", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "missing")
		if !errors.Is(err, domain.ErrRunNotFound) {
			t.Errorf("FindByID() error = %v, want ErrRunNotFound", err)
		}
	})
}
