package specification

import (
	"notepad-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByFolderID struct {
	FolderID uuid.UUID
}

func (s ByFolderID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("folder_id = ?", s.FolderID)
}

type WithoutFolder struct{}

func (s WithoutFolder) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("folder_id IS NULL")
}

type ByFavorite struct {
	Favorite bool
}

func (s ByFavorite) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("favorite = ?", s.Favorite)
}

// ForNoteFilter translates a typed note filter into specifications.
func ForNoteFilter(filter entity.NoteFilter) []Specification {
	specs := make([]Specification, 0, 2)

	switch filter.Folder.Kind {
	case entity.Unfiled:
		specs = append(specs, WithoutFolder{})
	case entity.InFolder:
		specs = append(specs, ByFolderID{FolderID: filter.Folder.Id})
	}

	if filter.Favorite != nil {
		specs = append(specs, ByFavorite{Favorite: *filter.Favorite})
	}

	return specs
}
