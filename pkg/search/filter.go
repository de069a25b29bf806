package search

import (
	"strings"

	"notepad-be/internal/entity"
)

// FavoriteKeyword additionally matches every favorite note when used as the whole term.
const FavoriteKeyword = "favorite"

// FilterNotes keeps notes whose title, description or folder name contains term,
// ignoring case. A blank term returns notes unchanged. It never touches storage.
func FilterNotes(notes []*entity.NoteWithFolder, term string) []*entity.NoteWithFolder {
	if strings.TrimSpace(term) == "" {
		return notes
	}

	needle := strings.ToLower(term)
	matched := make([]*entity.NoteWithFolder, 0, len(notes))
	for _, note := range notes {
		if Matches(note, needle) {
			matched = append(matched, note)
		}
	}
	return matched
}

// Matches reports whether note matches an already lower-cased term.
func Matches(note *entity.NoteWithFolder, needle string) bool {
	if note == nil {
		return false
	}
	if containsFold(note.Title, needle) || containsFold(note.Description, needle) {
		return true
	}
	if note.FolderName != nil && containsFold(*note.FolderName, needle) {
		return true
	}
	return needle == FavoriteKeyword && note.Favorite
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
