package dto

import (
	"time"

	"github.com/google/uuid"
)

// ChangeMessage is published on the change topic after every committed mutation.
type ChangeMessage struct {
	Type       string     `json:"type"`
	NoteId     *uuid.UUID `json:"note_id,omitempty"`
	FolderId   *uuid.UUID `json:"folder_id,omitempty"`
	Affected   int64      `json:"affected,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}
