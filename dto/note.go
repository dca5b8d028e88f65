package dto

// CreateNoteRequest is the POST /notes payload.
type CreateNoteRequest struct {
	Title   string `json:"title" binding:"required,notblank,max=200"`
	Content string `json:"content" binding:"max=50000"`
}

// UpdateNoteRequest is the PUT /notes/:id payload. Absent fields leave
// the stored value untouched.
type UpdateNoteRequest struct {
	Title   *string `json:"title" binding:"omitempty,notblank,max=200"`
	Content *string `json:"content" binding:"omitempty,max=50000"`
}

// ListNotesQuery carries the GET /notes filter parameters. Dates accept
// YYYY-MM-DD or RFC3339.
type ListNotesQuery struct {
	Query    string `form:"q"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

// RemoveImageQuery identifies the image reference to detach.
type RemoveImageQuery struct {
	URL string `form:"url" binding:"required"`
}
