package events

import "time"

// Change types carried on the change topic and forwarded to NATS.
const (
	NoteCreated   = "NOTE_CREATED"
	NoteUpdated   = "NOTE_UPDATED"
	NoteDeleted   = "NOTE_DELETED"
	FolderCreated = "FOLDER_CREATED"
	FolderRenamed = "FOLDER_RENAMED"
	FolderDeleted = "FOLDER_DELETED"
)

// Event defines the contract for everything published on the external bus.
type Event interface {
	// EventType returns the change type, e.g. NOTE_CREATED.
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
