package entity

import "github.com/google/uuid"

type FolderScopeKind int

const (
	// AnyFolder matches notes regardless of folder.
	AnyFolder FolderScopeKind = iota
	// Unfiled matches notes with no folder reference.
	Unfiled
	// InFolder matches notes referencing FolderScope.Id.
	InFolder
)

type FolderScope struct {
	Kind FolderScopeKind
	Id   uuid.UUID
}

func ScopeAny() FolderScope {
	return FolderScope{Kind: AnyFolder}
}

func ScopeUnfiled() FolderScope {
	return FolderScope{Kind: Unfiled}
}

func ScopeFolder(id uuid.UUID) FolderScope {
	return FolderScope{Kind: InFolder, Id: id}
}

// NoteFilter narrows a note listing. Both fields apply together.
type NoteFilter struct {
	Folder   FolderScope
	Favorite *bool
}
