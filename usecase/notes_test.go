package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whizpalsdeveloper/NotesApp/model"
	"github.com/whizpalsdeveloper/NotesApp/repository"
)

// fakeImageStore records saved and removed references and can be told
// to fail after a number of successful saves.
type fakeImageStore struct {
	saved     []string
	removed   []string
	failAfter int // fail the save once len(saved) reaches this; -1 never fails
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{failAfter: -1}
}

func (s *fakeImageStore) Save(_ context.Context, filename string, _ io.Reader, _ int64, _ string) (string, error) {
	if s.failAfter >= 0 && len(s.saved) >= s.failAfter {
		return "", errors.New("object store unavailable")
	}
	ref := fmt.Sprintf("http://store/%d-%s", len(s.saved), filename)
	s.saved = append(s.saved, ref)
	return ref, nil
}

func (s *fakeImageStore) Remove(_ context.Context, ref string) error {
	s.removed = append(s.removed, ref)
	return nil
}

func newTestService(images *fakeImageStore) (*NotesService, *repository.MemoryStore) {
	store := repository.NewMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewNotesService(store, images, log), store
}

func uploads(names ...string) []UploadFile {
	files := make([]UploadFile, 0, len(names))
	for _, name := range names {
		files = append(files, UploadFile{
			Name:        name,
			Reader:      strings.NewReader("image bytes"),
			Size:        11,
			ContentType: "image/png",
		})
	}
	return files
}

func TestCreateNoteValidation(t *testing.T) {
	svc, _ := newTestService(newFakeImageStore())
	ctx := context.Background()

	tests := []struct {
		name    string
		title   string
		content string
		wantErr bool
	}{
		{name: "valid", title: "hello", content: "world"},
		{name: "empty title", title: "", wantErr: true},
		{name: "whitespace title", title: "   ", wantErr: true},
		{name: "title too long", title: strings.Repeat("a", 201), wantErr: true},
		{name: "title at limit", title: strings.Repeat("a", 200)},
		{name: "content too long", title: "ok", content: strings.Repeat("b", 50001), wantErr: true},
		{name: "empty content allowed", title: "ok", content: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			note, err := svc.CreateNote(ctx, tc.title, tc.content)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, note.ID)
			assert.Equal(t, note.CreatedAt, note.UpdatedAt)
			assert.NotNil(t, note.Images)
		})
	}
}

func TestCreateNoteTrimsTitle(t *testing.T) {
	svc, _ := newTestService(newFakeImageStore())

	note, err := svc.CreateNote(context.Background(), "  padded  ", "")
	require.NoError(t, err)
	assert.Equal(t, "padded", note.Title)
}

func TestUpdateNoteValidation(t *testing.T) {
	svc, _ := newTestService(newFakeImageStore())
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, "before", "old")
	require.NoError(t, err)

	blank := "   "
	_, err = svc.UpdateNote(ctx, note.ID, repository.NoteUpdate{Title: &blank})
	assert.ErrorIs(t, err, ErrValidation)

	// failed update leaves the note untouched
	got, err := svc.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "before", got.Title)

	title := "after"
	updated, err := svc.UpdateNote(ctx, note.ID, repository.NoteUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "old", updated.Content)

	_, err = svc.UpdateNote(ctx, "missing", repository.NoteUpdate{Title: &title})
	assert.ErrorIs(t, err, repository.ErrNoteNotFound)
}

func TestListNotesDateParsing(t *testing.T) {
	svc, store := newTestService(newFakeImageStore())
	ctx := context.Background()

	note, err := store.InsertNote(ctx, &model.Note{Title: "dated", Images: []string{}})
	require.NoError(t, err)

	day := note.CreatedAt.Format("2006-01-02")

	// date-only bounds cover the whole day on both ends
	notes, err := svc.ListNotes(ctx, "", day, day)
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	// RFC3339 bounds work too
	from := note.CreatedAt.Add(-time.Minute).Format(time.RFC3339)
	notes, err = svc.ListNotes(ctx, "", from, "")
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	_, err = svc.ListNotes(ctx, "", "not-a-date", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.ListNotes(ctx, "", "", "2026/01/01")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAttachImages(t *testing.T) {
	images := newFakeImageStore()
	svc, _ := newTestService(images)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, "with images", "")
	require.NoError(t, err)

	updated, err := svc.AttachImages(ctx, note.ID, uploads("a.png", "b.png"))
	require.NoError(t, err)
	assert.Len(t, updated.Images, 2)
	assert.Equal(t, images.saved, updated.Images)
	assert.Empty(t, images.removed)
}

func TestAttachImagesEmptyUpload(t *testing.T) {
	svc, _ := newTestService(newFakeImageStore())

	_, err := svc.AttachImages(context.Background(), "whatever", nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAttachImagesMissingNoteUploadsNothing(t *testing.T) {
	images := newFakeImageStore()
	svc, _ := newTestService(images)

	_, err := svc.AttachImages(context.Background(), "missing", uploads("a.png"))
	assert.ErrorIs(t, err, repository.ErrNoteNotFound)
	assert.Empty(t, images.saved)
}

func TestAttachImagesCleansUpOnPartialFailure(t *testing.T) {
	images := newFakeImageStore()
	images.failAfter = 1 // second save fails
	svc, _ := newTestService(images)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, "unlucky", "")
	require.NoError(t, err)

	_, err = svc.AttachImages(ctx, note.ID, uploads("a.png", "b.png"))
	require.Error(t, err)

	// the one uploaded object was deleted again
	assert.Equal(t, images.saved, images.removed)

	// and the note gained no references
	got, err := svc.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Images)
}

func TestDetachImage(t *testing.T) {
	images := newFakeImageStore()
	svc, _ := newTestService(images)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, "pics", "")
	require.NoError(t, err)
	attached, err := svc.AttachImages(ctx, note.ID, uploads("a.png", "b.png"))
	require.NoError(t, err)

	ref := attached.Images[0]
	updated, err := svc.DetachImage(ctx, note.ID, ref)
	require.NoError(t, err)
	assert.Len(t, updated.Images, 1)
	assert.NotContains(t, updated.Images, ref)
	assert.Contains(t, images.removed, ref)

	// detaching an absent reference succeeds without touching the note
	again, err := svc.DetachImage(ctx, note.ID, "http://store/ghost.png")
	require.NoError(t, err)
	assert.Equal(t, updated.Images, again.Images)

	_, err = svc.DetachImage(ctx, "missing", ref)
	assert.ErrorIs(t, err, repository.ErrNoteNotFound)
}

func TestCountNotes(t *testing.T) {
	svc, _ := newTestService(newFakeImageStore())
	ctx := context.Background()

	_, err := svc.CreateNote(ctx, "one", "")
	require.NoError(t, err)
	_, err = svc.CreateNote(ctx, "two", "")
	require.NoError(t, err)

	count, err := svc.CountNotes(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
