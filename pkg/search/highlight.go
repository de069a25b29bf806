package search

import "regexp"

// Span is one segment of highlighted text.
type Span struct {
	Matched bool   `json:"matched"`
	Text    string `json:"text"`
}

// HighlightSpans splits text on every case-insensitive occurrence of term.
// Regex metacharacters in term are matched literally and empty segments are
// dropped. An empty term yields a single unmatched span holding the whole text.
func HighlightSpans(text, term string) []Span {
	if term == "" {
		return []Span{{Matched: false, Text: text}}
	}

	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []Span{{Matched: false, Text: text}}
	}

	spans := make([]Span, 0, len(locs)*2+1)
	cursor := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if start > cursor {
			spans = append(spans, Span{Matched: false, Text: text[cursor:start]})
		}
		if end > start {
			spans = append(spans, Span{Matched: true, Text: text[start:end]})
		}
		cursor = end
	}
	if cursor < len(text) {
		spans = append(spans, Span{Matched: false, Text: text[cursor:]})
	}
	return spans
}
