package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/whizpalsdeveloper/NotesApp/model"
	"github.com/whizpalsdeveloper/NotesApp/repository"
	"github.com/whizpalsdeveloper/NotesApp/storage"
)

const (
	maxTitleLen   = 200
	maxContentLen = 50000
)

// ErrValidation marks failures caused by bad input; the handler layer
// maps it to a 400 instead of a 500.
var ErrValidation = errors.New("validation failed")

// UploadFile is one file from a multipart image upload.
type UploadFile struct {
	Name        string
	Reader      io.Reader
	Size        int64
	ContentType string
}

// NotesService validates input, coordinates the note store with the
// image store, and owns the no-partial-write rule for attachments.
type NotesService struct {
	Store  repository.NoteStore
	Images storage.ImageStore
	Log    *slog.Logger
}

func NewNotesService(store repository.NoteStore, images storage.ImageStore, log *slog.Logger) *NotesService {
	return &NotesService{Store: store, Images: images, Log: log}
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(title) > maxTitleLen {
		return "", fmt.Errorf("%w: title exceeds %d characters", ErrValidation, maxTitleLen)
	}
	return title, nil
}

// parseDateBound accepts YYYY-MM-DD or RFC3339. A date-only upper bound
// is pushed to the end of that day so the range stays inclusive.
func parseDateBound(value string, upper bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		if upper {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, value)
	}
	return t, nil
}

func (svc *NotesService) ListNotes(ctx context.Context, query, dateFrom, dateTo string) ([]*model.Note, error) {
	from, err := parseDateBound(dateFrom, false)
	if err != nil {
		return nil, err
	}
	to, err := parseDateBound(dateTo, true)
	if err != nil {
		return nil, err
	}

	filter := repository.NoteFilter{
		Query:    strings.TrimSpace(query),
		DateFrom: from,
		DateTo:   to,
	}
	return svc.Store.FindNotes(ctx, filter)
}

func (svc *NotesService) GetNote(ctx context.Context, id string) (*model.Note, error) {
	return svc.Store.GetNote(ctx, id)
}

func (svc *NotesService) CreateNote(ctx context.Context, title, content string) (*model.Note, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	if len(content) > maxContentLen {
		return nil, fmt.Errorf("%w: content exceeds %d characters", ErrValidation, maxContentLen)
	}

	note := &model.Note{
		Title:   title,
		Content: content,
		Images:  []string{},
	}
	return svc.Store.InsertNote(ctx, note)
}

func (svc *NotesService) UpdateNote(ctx context.Context, id string, update repository.NoteUpdate) (*model.Note, error) {
	if update.Title != nil {
		title, err := validateTitle(*update.Title)
		if err != nil {
			return nil, err
		}
		update.Title = &title
	}
	if update.Content != nil && len(*update.Content) > maxContentLen {
		return nil, fmt.Errorf("%w: content exceeds %d characters", ErrValidation, maxContentLen)
	}

	return svc.Store.UpdateNote(ctx, id, update)
}

func (svc *NotesService) DeleteNote(ctx context.Context, id string) error {
	return svc.Store.DeleteNote(ctx, id)
}

// AttachImages uploads every file, then appends the references to the
// note in one store update. If any step fails, objects uploaded so far
// are deleted again so the document and the object store stay in sync.
func (svc *NotesService) AttachImages(ctx context.Context, id string, files []UploadFile) (*model.Note, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files provided", ErrValidation)
	}

	// confirm the note exists before uploading anything
	if _, err := svc.Store.GetNote(ctx, id); err != nil {
		return nil, err
	}

	refs := make([]string, 0, len(files))
	cleanup := func() {
		for _, ref := range refs {
			if err := svc.Images.Remove(ctx, ref); err != nil {
				svc.Log.Warn("orphaned image object left behind", "ref", ref, "error", err)
			}
		}
	}

	for _, f := range files {
		ref, err := svc.Images.Save(ctx, f.Name, f.Reader, f.Size, f.ContentType)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("save image: %w", err)
		}
		refs = append(refs, ref)
	}

	note, err := svc.Store.AddImages(ctx, id, refs)
	if err != nil {
		cleanup()
		return nil, err
	}
	return note, nil
}

// DetachImage drops the reference from the note, then deletes the stored
// object best-effort; a stale object is preferable to a dangling ref.
func (svc *NotesService) DetachImage(ctx context.Context, id, ref string) (*model.Note, error) {
	note, err := svc.Store.RemoveImage(ctx, id, ref)
	if err != nil {
		return nil, err
	}
	if err := svc.Images.Remove(ctx, ref); err != nil {
		svc.Log.Warn("failed to delete image object", "ref", ref, "error", err)
	}
	return note, nil
}

func (svc *NotesService) CountNotes(ctx context.Context) (int64, error) {
	return svc.Store.CountNotes(ctx)
}
