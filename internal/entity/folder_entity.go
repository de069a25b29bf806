package entity

import (
	"time"

	"github.com/google/uuid"
)

type Folder struct {
	Id        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// FolderWithNotes is a folder decorated with its notes, most recent first.
type FolderWithNotes struct {
	Folder    Folder
	Notes     []*Note
	NoteCount int
}
