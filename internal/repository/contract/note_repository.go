package contract

import (
	"context"

	"notepad-be/internal/entity"
	"notepad-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	// UpdateFields applies a column->value patch and returns the stored note,
	// or nil when no note has the given id.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*entity.Note, error)
	// UpdateAll applies a patch to every matching note and reports how many rows changed.
	UpdateAll(ctx context.Context, fields map[string]interface{}, specs ...specification.Specification) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
