package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whizpalsdeveloper/NotesApp/dto"
	"github.com/whizpalsdeveloper/NotesApp/middleware"
	"github.com/whizpalsdeveloper/NotesApp/repository"
	"github.com/whizpalsdeveloper/NotesApp/usecase"
	"github.com/whizpalsdeveloper/NotesApp/utils"
)

// NotesHandler exposes the note CRUD and image attachment endpoints.
// Successful responses are the bare note document; errors use the
// {"error": ...} shape.
type NotesHandler struct {
	Service *usecase.NotesService
	Log     *slog.Logger
}

func NewNotesHandler(service *usecase.NotesService, log *slog.Logger) *NotesHandler {
	return &NotesHandler{Service: service, Log: log}
}

// fail maps service errors to HTTP statuses. Anything that is neither
// a validation failure nor a missing note stays internal.
func (h *NotesHandler) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNoteNotFound):
		utils.NotFound(c, "note not found")
	case errors.Is(err, usecase.ErrValidation):
		utils.BadRequest(c, err.Error())
	default:
		h.Log.Error("request failed",
			"op", op,
			"error", err,
			"request_id", c.GetString("request_id"),
		)
		utils.InternalError(c)
	}
}

// ListNotes handles GET /notes?q=&date_from=&date_to=
func (h *NotesHandler) ListNotes(c *gin.Context) {
	var query dto.ListNotesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequest(c, "invalid query parameters")
		return
	}

	notes, err := h.Service.ListNotes(c.Request.Context(), query.Query, query.DateFrom, query.DateTo)
	if err != nil {
		h.fail(c, "list_notes", err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// GetNote handles GET /notes/:id
func (h *NotesHandler) GetNote(c *gin.Context) {
	note, err := h.Service.GetNote(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get_note", err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// CreateNote handles POST /notes
func (h *NotesHandler) CreateNote(c *gin.Context) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	note, err := h.Service.CreateNote(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		h.fail(c, "create_note", err)
		return
	}

	middleware.TrackNoteOperation("create")
	c.JSON(http.StatusCreated, note)
}

// UpdateNote handles PUT /notes/:id
func (h *NotesHandler) UpdateNote(c *gin.Context) {
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	update := repository.NoteUpdate{Title: req.Title, Content: req.Content}
	note, err := h.Service.UpdateNote(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		h.fail(c, "update_note", err)
		return
	}

	middleware.TrackNoteOperation("update")
	c.JSON(http.StatusOK, note)
}

// DeleteNote handles DELETE /notes/:id
func (h *NotesHandler) DeleteNote(c *gin.Context) {
	if err := h.Service.DeleteNote(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete_note", err)
		return
	}

	middleware.TrackNoteOperation("delete")
	c.Status(http.StatusNoContent)
}

// AddImages handles POST /notes/:id/images (multipart field "files")
func (h *NotesHandler) AddImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequest(c, "invalid multipart form")
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		utils.BadRequest(c, "no files provided")
		return
	}

	files := make([]usecase.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			utils.BadRequest(c, "unreadable file in upload")
			return
		}
		defer f.Close()
		files = append(files, usecase.UploadFile{
			Name:        fh.Filename,
			Reader:      f,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
		})
	}

	note, err := h.Service.AttachImages(c.Request.Context(), c.Param("id"), files)
	if err != nil {
		h.fail(c, "add_images", err)
		return
	}

	middleware.TrackNoteOperation("add_images")
	c.JSON(http.StatusOK, note)
}

// RemoveImage handles DELETE /notes/:id/images?url=
func (h *NotesHandler) RemoveImage(c *gin.Context) {
	var query dto.RemoveImageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequest(c, "url query parameter is required")
		return
	}

	note, err := h.Service.DetachImage(c.Request.Context(), c.Param("id"), query.URL)
	if err != nil {
		h.fail(c, "remove_image", err)
		return
	}

	middleware.TrackNoteOperation("remove_image")
	c.JSON(http.StatusOK, note)
}
