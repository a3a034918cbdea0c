package domain

import "time"

// NotesKey is the storage key of the single notes blob.
const NotesKey = "countdown.notes"

// Note is a stored free-text blob.
type Note struct {
	Key       string
	Body      string
	UpdatedAt time.Time
}
