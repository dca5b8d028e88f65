package model

import (
	"time"
)

// Note is the single persisted entity: a titled text entry with optional
// image attachments. Timestamps are set by the store; the ID is assigned
// once at insert and never reused.
type Note struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	Images    []string  `bson:"images" json:"images"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Clone returns a deep copy so callers can hand notes across layers
// without sharing the Images slice.
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	out := *n
	out.Images = append([]string{}, n.Images...)
	return &out
}
