package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateFolderRequest struct {
	Name string `json:"name" validate:"required"`
}

type RenameFolderRequest struct {
	Id   uuid.UUID `json:"-"`
	Name string    `json:"name" validate:"required"`
}

type FolderResponse struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// NoteSummaryResponse is a note embedded in a folder listing.
type NoteSummaryResponse struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Favorite    bool      `json:"favorite"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type FolderWithNotesResponse struct {
	Id        uuid.UUID              `json:"id"`
	Name      string                 `json:"name"`
	CreatedAt time.Time              `json:"created_at"`
	Notes     []*NoteSummaryResponse `json:"notes"`
	NoteCount int                    `json:"note_count"`
}

type FoldersOverviewResponse struct {
	Folders        []*FolderWithNotesResponse `json:"folders"`
	TotalNoteCount int64                      `json:"total_note_count"`
}

type DeleteFolderResponse struct {
	Id            uuid.UUID `json:"id"`
	OrphanedNotes int64     `json:"orphaned_notes"`
}
