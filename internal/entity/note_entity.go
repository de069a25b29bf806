package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id          uuid.UUID
	Title       string
	Description string
	Favorite    bool
	FolderId    *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NoteWithFolder is a note joined with the name of the folder it references.
// FolderName is nil for unfiled notes and for notes whose folder no longer exists.
type NoteWithFolder struct {
	Note
	FolderName *string
}
