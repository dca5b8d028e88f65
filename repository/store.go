package repository

import (
	"context"
	"errors"
	"time"

	"github.com/whizpalsdeveloper/NotesApp/model"
)

// ErrNoteNotFound is returned by every store operation that references a
// note id which does not exist (or no longer exists).
var ErrNoteNotFound = errors.New("note not found")

// NoteFilter narrows FindNotes results. The zero value matches everything.
type NoteFilter struct {
	Query    string    // case-insensitive substring against title or content
	DateFrom time.Time // inclusive lower bound on created_at; zero = unbounded
	DateTo   time.Time // inclusive upper bound on created_at; zero = unbounded
}

// NoteUpdate carries a partial update. Nil fields are left untouched.
type NoteUpdate struct {
	Title   *string
	Content *string
}

// NoteStore is the persistence contract for notes. It is implemented by
// NotesRepo (MongoDB) and MemoryStore (in-memory fallback and tests).
type NoteStore interface {
	// FindNotes returns matching notes sorted by created_at descending.
	// An empty result is an empty slice, never an error.
	FindNotes(ctx context.Context, filter NoteFilter) ([]*model.Note, error)

	// GetNote returns the note or ErrNoteNotFound.
	GetNote(ctx context.Context, id string) (*model.Note, error)

	// InsertNote assigns the id and both timestamps, persists the note and
	// returns the stored document.
	InsertNote(ctx context.Context, note *model.Note) (*model.Note, error)

	// UpdateNote merges the set fields of update into the note, refreshes
	// updated_at and returns the updated document.
	UpdateNote(ctx context.Context, id string, update NoteUpdate) (*model.Note, error)

	// DeleteNote removes the note permanently.
	DeleteNote(ctx context.Context, id string) error

	// AddImages appends image references (skipping ones already present)
	// and refreshes updated_at.
	AddImages(ctx context.Context, id string, refs []string) (*model.Note, error)

	// RemoveImage removes a matching image reference and refreshes
	// updated_at. Removing a reference that is not attached succeeds as a
	// no-op on the existing note.
	RemoveImage(ctx context.Context, id string, ref string) (*model.Note, error)

	// CountNotes returns the total number of stored notes.
	CountNotes(ctx context.Context) (int64, error)
}
