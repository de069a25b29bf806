package search

import (
	"strings"
	"unicode"

	"notepad-be/internal/entity"
)

// Query holds the extracted filters and the remaining free-text term
type Query struct {
	FolderName string
	NoteTitle  string
	Term       string // matched against title, description and folder name
}

// ParseQuery extracts slash commands from the raw query string
// Supported:
// /in:<term> OR /folder:<term> -> Filter by Folder Name
// /title:<term> -> Filter by Note Title
// <text> -> Remaining text is the Term, spacing kept as typed
func ParseQuery(raw string) Query {
	q := Query{}
	var term strings.Builder
	prevEnd := 0
	dropped := false

	for _, tok := range tokenize(raw) {
		part := raw[tok.start:tok.end]
		lowerPart := strings.ToLower(part)

		switch {
		case strings.HasPrefix(lowerPart, "/in:"):
			q.FolderName = strings.TrimPrefix(lowerPart, "/in:")
		case strings.HasPrefix(lowerPart, "/folder:"):
			// Alias for /in:
			q.FolderName = strings.TrimPrefix(lowerPart, "/folder:")
		case strings.HasPrefix(lowerPart, "/title:"):
			q.NoteTitle = strings.TrimPrefix(lowerPart, "/title:")
		default:
			if term.Len() > 0 || !dropped {
				term.WriteString(raw[prevEnd:tok.start])
			}
			term.WriteString(part)
			prevEnd = tok.end
			continue
		}
		dropped = true
		prevEnd = tok.end
	}

	if !dropped {
		q.Term = raw
	} else {
		q.Term = term.String()
	}
	return q
}

type span struct{ start, end int }

// tokenize returns the byte ranges of the whitespace-separated words in s.
func tokenize(s string) []span {
	var spans []span
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				spans = append(spans, span{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, span{start, len(s)})
	}
	return spans
}

// Apply narrows notes by the slash-command filters, then by the free-text term.
func (q Query) Apply(notes []*entity.NoteWithFolder) []*entity.NoteWithFolder {
	if q.FolderName != "" || q.NoteTitle != "" {
		narrowed := make([]*entity.NoteWithFolder, 0, len(notes))
		for _, note := range notes {
			if q.FolderName != "" && (note.FolderName == nil || !containsFold(*note.FolderName, q.FolderName)) {
				continue
			}
			if q.NoteTitle != "" && !containsFold(note.Title, q.NoteTitle) {
				continue
			}
			narrowed = append(narrowed, note)
		}
		notes = narrowed
	}
	return FilterNotes(notes, q.Term)
}
