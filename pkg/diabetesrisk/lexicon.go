package diabetesrisk

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultTerms are the trigger terms practitioners use in notes when a
// diabetes risk factor is observed.
var defaultTerms = []string{
	"HbA1C", "Microalbumine", "Taille", "Poids", "Fumeur", "Fumer",
	"Fumeuse", "Anormal", "Cholestérol", "Vertiges", "Rechute", "Réaction", "Anticorps",
}

// Lexicon is an immutable, ordered set of case-insensitive trigger terms.
// The zero value is an empty lexicon.
type Lexicon struct {
	terms   []string
	lowered []string
}

// NewLexicon builds a lexicon from terms. Blank terms are dropped and
// case-insensitive duplicates collapse onto their first occurrence.
func NewLexicon(terms ...string) Lexicon {
	seen := make(map[string]bool, len(terms))
	lex := Lexicon{}
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		low := strings.ToLower(t)
		if seen[low] {
			continue
		}
		seen[low] = true
		lex.terms = append(lex.terms, t)
		lex.lowered = append(lex.lowered, low)
	}
	return lex
}

// DefaultLexicon returns the standard diabetes trigger terms.
func DefaultLexicon() Lexicon {
	return NewLexicon(defaultTerms...)
}

// Terms returns a copy of the terms in their original case and order.
func (l Lexicon) Terms() []string {
	out := make([]string, len(l.terms))
	copy(out, l.terms)
	return out
}

// Len returns the number of terms.
func (l Lexicon) Len() int {
	return len(l.terms)
}

type lexiconFile struct {
	Terms []string `yaml:"terms"`
}

// LoadLexiconFile reads a YAML document of the form
//
//	terms:
//	  - HbA1C
//	  - Microalbumine
//
// and returns the corresponding lexicon.
func LoadLexiconFile(path string) (Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("read lexicon file: %w", err)
	}
	var f lexiconFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Lexicon{}, fmt.Errorf("parse lexicon file %s: %w", path, err)
	}
	lex := NewLexicon(f.Terms...)
	if lex.Len() == 0 {
		return Lexicon{}, fmt.Errorf("lexicon file %s contains no terms", path)
	}
	return lex, nil
}
