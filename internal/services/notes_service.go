package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xvierd/countdown-cli/internal/domain"
	"github.com/xvierd/countdown-cli/internal/ports"
)

// NotesService handles the persisted notes blob.
type NotesService struct {
	repo ports.NotesRepository
	key  string
	now  func() time.Time
}

// NewNotesService creates a notes service over the storage notes repository.
func NewNotesService(storage ports.Storage) *NotesService {
	return &NotesService{
		repo: storage.Notes(),
		key:  domain.NotesKey,
		now:  time.Now,
	}
}

// Get returns the saved notes, or "" when nothing is saved.
func (s *NotesService) Get(ctx context.Context) (string, error) {
	note, err := s.repo.Get(ctx, s.key)
	if errors.Is(err, domain.ErrNoteNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load notes: %w", err)
	}
	return note.Body, nil
}

// HasSaved reports whether a notes blob is stored.
func (s *NotesService) HasSaved(ctx context.Context) (bool, error) {
	_, err := s.repo.Get(ctx, s.key)
	if errors.Is(err, domain.ErrNoteNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check notes: %w", err)
	}
	return true, nil
}

// Set saves text. Blank text clears the stored notes instead.
func (s *NotesService) Set(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return s.Clear(ctx)
	}
	note := &domain.Note{Key: s.key, Body: text, UpdatedAt: s.now()}
	if err := s.repo.Set(ctx, note); err != nil {
		return fmt.Errorf("failed to save notes: %w", err)
	}
	return nil
}

// Clear removes the stored notes.
func (s *NotesService) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear notes: %w", err)
	}
	return nil
}
