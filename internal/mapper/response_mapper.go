package mapper

import (
	"notepad-be/internal/dto"
	"notepad-be/internal/entity"
)

func ToFolderResponse(f *entity.Folder) *dto.FolderResponse {
	if f == nil {
		return nil
	}
	return &dto.FolderResponse{
		Id:        f.Id,
		Name:      f.Name,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func ToFolderResponses(folders []*entity.Folder) []*dto.FolderResponse {
	res := make([]*dto.FolderResponse, len(folders))
	for i, f := range folders {
		res[i] = ToFolderResponse(f)
	}
	return res
}

func ToNoteResponse(n *entity.NoteWithFolder) *dto.NoteResponse {
	if n == nil {
		return nil
	}
	return &dto.NoteResponse{
		Id:          n.Id,
		Title:       n.Title,
		Description: n.Description,
		Favorite:    n.Favorite,
		FolderId:    n.FolderId,
		FolderName:  n.FolderName,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func ToNoteResponses(notes []*entity.NoteWithFolder) []*dto.NoteResponse {
	res := make([]*dto.NoteResponse, len(notes))
	for i, n := range notes {
		res[i] = ToNoteResponse(n)
	}
	return res
}

func ToNoteSummary(n *entity.Note) *dto.NoteSummaryResponse {
	return &dto.NoteSummaryResponse{
		Id:          n.Id,
		Title:       n.Title,
		Description: n.Description,
		Favorite:    n.Favorite,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func ToFolderWithNotesResponse(f *entity.FolderWithNotes) *dto.FolderWithNotesResponse {
	notes := make([]*dto.NoteSummaryResponse, len(f.Notes))
	for i, n := range f.Notes {
		notes[i] = ToNoteSummary(n)
	}
	return &dto.FolderWithNotesResponse{
		Id:        f.Folder.Id,
		Name:      f.Folder.Name,
		CreatedAt: f.Folder.CreatedAt,
		Notes:     notes,
		NoteCount: f.NoteCount,
	}
}
