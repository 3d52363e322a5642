package diabetesrisk

import (
	"strings"
	"time"
)

// Note is the engine's read-only view of a practitioner note.
type Note struct {
	ID        string
	PatientID string
	AuthorID  string
	Timestamp time.Time
	Text      *string
}

// CountEvidence returns the number of (note, term) pairs where the term
// appears in the note text. Matching is a case-insensitive substring test
// with no word boundaries, so a term also matches inside a longer word.
// Each term contributes at most once per note; notes without text count zero.
func CountEvidence(notes []Note, lex Lexicon) int {
	count := 0
	for _, n := range notes {
		if n.Text == nil || *n.Text == "" {
			continue
		}
		text := strings.ToLower(*n.Text)
		for _, term := range lex.lowered {
			if strings.Contains(text, term) {
				count++
			}
		}
	}
	return count
}

// MatchedTerms returns the lexicon terms found in text, in lexicon order.
func MatchedTerms(text string, lex Lexicon) []string {
	if text == "" {
		return nil
	}
	low := strings.ToLower(text)
	var out []string
	for i, term := range lex.lowered {
		if strings.Contains(low, term) {
			out = append(out, lex.terms[i])
		}
	}
	return out
}
