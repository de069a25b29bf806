package dto

import (
	"time"

	"notepad-be/internal/entity"
	"notepad-be/pkg/search"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" validate:"required"`
	FolderId    *uuid.UUID `json:"folder_id"`
}

// UpdateNoteRequest only changes fields present in the payload.
// A null folder_id unfiles the note.
type UpdateNoteRequest struct {
	Id          uuid.UUID           `json:"-"`
	Title       Optional[string]    `json:"title"`
	Description Optional[string]    `json:"description"`
	Favorite    Optional[bool]      `json:"favorite"`
	FolderId    Optional[uuid.UUID] `json:"folder_id"`
}

type ListNotesRequest struct {
	Filter entity.NoteFilter
	Query  string
}

type NoteResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Favorite    bool       `json:"favorite"`
	FolderId    *uuid.UUID `json:"folder_id"`
	FolderName  *string    `json:"folder_name"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type NoteSearchResult struct {
	Note             *NoteResponse `json:"note"`
	TitleSpans       []search.Span `json:"title_spans"`
	DescriptionSpans []search.Span `json:"description_spans"`
}

type DeleteNoteResponse struct {
	Id uuid.UUID `json:"id"`
}
