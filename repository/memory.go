package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/whizpalsdeveloper/NotesApp/model"
)

// MemoryStore keeps notes in a process-local map. It backs the unit tests
// and serves as the store when no MongoDB URI is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	notes map[string]*model.Note
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{notes: make(map[string]*model.Note)}
}

func (m *MemoryStore) FindNotes(ctx context.Context, filter NoteFilter) ([]*model.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*model.Note{}
	q := strings.ToLower(strings.TrimSpace(filter.Query))
	for _, note := range m.notes {
		if q != "" &&
			!strings.Contains(strings.ToLower(note.Title), q) &&
			!strings.Contains(strings.ToLower(note.Content), q) {
			continue
		}
		if !filter.DateFrom.IsZero() && note.CreatedAt.Before(filter.DateFrom) {
			continue
		}
		if !filter.DateTo.IsZero() && note.CreatedAt.After(filter.DateTo) {
			continue
		}
		out = append(out, note.Clone())
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) GetNote(ctx context.Context, id string) (*model.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	note, ok := m.notes[id]
	if !ok {
		return nil, ErrNoteNotFound
	}
	return note.Clone(), nil
}

func (m *MemoryStore) InsertNote(ctx context.Context, note *model.Note) (*model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := note.Clone()
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.notes[stored.ID] = stored
	return stored.Clone(), nil
}

func (m *MemoryStore) UpdateNote(ctx context.Context, id string, update NoteUpdate) (*model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	note, ok := m.notes[id]
	if !ok {
		return nil, ErrNoteNotFound
	}
	if update.Title != nil {
		note.Title = *update.Title
	}
	if update.Content != nil {
		note.Content = *update.Content
	}
	note.UpdatedAt = time.Now().UTC()
	return note.Clone(), nil
}

func (m *MemoryStore) DeleteNote(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.notes[id]; !ok {
		return ErrNoteNotFound
	}
	delete(m.notes, id)
	return nil
}

func (m *MemoryStore) AddImages(ctx context.Context, id string, refs []string) (*model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	note, ok := m.notes[id]
	if !ok {
		return nil, ErrNoteNotFound
	}
	for _, ref := range refs {
		if !containsRef(note.Images, ref) {
			note.Images = append(note.Images, ref)
		}
	}
	note.UpdatedAt = time.Now().UTC()
	return note.Clone(), nil
}

func (m *MemoryStore) RemoveImage(ctx context.Context, id string, ref string) (*model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	note, ok := m.notes[id]
	if !ok {
		return nil, ErrNoteNotFound
	}
	kept := note.Images[:0]
	for _, img := range note.Images {
		if img != ref {
			kept = append(kept, img)
		}
	}
	note.Images = kept
	note.UpdatedAt = time.Now().UTC()
	return note.Clone(), nil
}

func (m *MemoryStore) CountNotes(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.notes)), nil
}

func containsRef(refs []string, ref string) bool {
	for _, r := range refs {
		if r == ref {
			return true
		}
	}
	return false
}
