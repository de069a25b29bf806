package service

import (
	"context"
	"strings"
	"time"

	"notepad-be/internal/entity"
	"notepad-be/internal/pkg/apperror"
	"notepad-be/internal/repository/contract"
	"notepad-be/internal/repository/specification"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// systemClock truncates to microseconds, the precision Postgres keeps.
func systemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// nextUpdatedAt returns now, or one microsecond past prev when the clock has
// not moved beyond it, so updated_at strictly increases on every mutation.
func nextUpdatedAt(now, prev time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Microsecond)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// validateRequiredText rejects empty and whitespace-only values. Length is
// not bounded.
func validateRequiredText(field, value string) error {
	return toValidationError(field, validation.Validate(strings.TrimSpace(value), validation.Required))
}

func toValidationError(field string, err error) error {
	if err == nil {
		return nil
	}
	return apperror.NewValidationError(field, err.Error())
}

// attachFolderNames joins each note with its folder's name. Notes whose
// folder no longer exists get a nil name.
func attachFolderNames(ctx context.Context, folders contract.FolderRepository, notes []*entity.Note) ([]*entity.NoteWithFolder, error) {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, n := range notes {
		if n.FolderId == nil {
			continue
		}
		if _, ok := seen[*n.FolderId]; ok {
			continue
		}
		seen[*n.FolderId] = struct{}{}
		ids = append(ids, *n.FolderId)
	}

	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) > 0 {
		found, err := folders.FindAll(ctx, specification.ByIDs{IDs: ids})
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			names[f.Id] = f.Name
		}
	}

	res := make([]*entity.NoteWithFolder, len(notes))
	for i, n := range notes {
		joined := &entity.NoteWithFolder{Note: *n}
		if n.FolderId != nil {
			if name, ok := names[*n.FolderId]; ok {
				joined.FolderName = &name
			}
		}
		res[i] = joined
	}
	return res, nil
}
