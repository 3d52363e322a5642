package diabetesrisk

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string) *string { return &s }

func notesOf(texts ...string) []Note {
	out := make([]Note, 0, len(texts))
	for _, s := range texts {
		out = append(out, Note{Text: text(s)})
	}
	return out
}

func TestCountEvidence_NoTriggers(t *testing.T) {
	assert.Equal(t, 0, CountEvidence(notesOf("une transmission sans probleme"), DefaultLexicon()))
}

func TestCountEvidence_CaseInsensitive(t *testing.T) {
	got := CountEvidence(notesOf("Le patient est FUMEUR, taux hba1c anormal"), DefaultLexicon())
	assert.Equal(t, 3, got)
}

func TestCountEvidence_TermCountedOncePerNote(t *testing.T) {
	got := CountEvidence(notesOf("fumeuse, toujours fumeuse, très fumeuse"), DefaultLexicon())
	assert.Equal(t, 1, got)
}

func TestCountEvidence_SameTermAcrossNotes(t *testing.T) {
	got := CountEvidence(notesOf("Anticorps présents", "anticorps toujours présents"), DefaultLexicon())
	assert.Equal(t, 2, got)
}

func TestCountEvidence_SubstringMatchesInsideWords(t *testing.T) {
	// "fumer" is found inside "fumerie" even though no word is "fumer".
	got := CountEvidence(notesOf("visite d'une fumerie"), DefaultLexicon())
	assert.Equal(t, 1, got)
}

func TestCountEvidence_AbsentAndEmptyText(t *testing.T) {
	notes := []Note{{ID: "1"}, {ID: "2", Text: text("")}, {ID: "3", Text: text("Vertiges")}}
	assert.Equal(t, 1, CountEvidence(notes, DefaultLexicon()))
	assert.Equal(t, 0, CountEvidence(nil, DefaultLexicon()))
}

func TestCountEvidence_OrderIndependent(t *testing.T) {
	notes := notesOf(
		"HbA1C élevé, poids en hausse",
		"Fumeur, vertiges fréquents",
		"rien à signaler",
		"Cholestérol anormal, réaction cutanée, rechute",
	)
	lex := DefaultLexicon()
	want := CountEvidence(notes, lex)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffledNotes := append([]Note(nil), notes...)
		rng.Shuffle(len(shuffledNotes), func(a, b int) { shuffledNotes[a], shuffledNotes[b] = shuffledNotes[b], shuffledNotes[a] })
		terms := lex.Terms()
		rng.Shuffle(len(terms), func(a, b int) { terms[a], terms[b] = terms[b], terms[a] })
		require.Equal(t, want, CountEvidence(shuffledNotes, NewLexicon(terms...)))
	}
}

func TestCountEvidence_MonotonicInNotes(t *testing.T) {
	lex := DefaultLexicon()
	var notes []Note
	prev := 0
	for _, s := range []string{"poids stable", "", "rien", "Microalbumine, taille", "fumer"} {
		notes = append(notes, Note{Text: text(s)})
		got := CountEvidence(notes, lex)
		require.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestMatchedTerms(t *testing.T) {
	got := MatchedTerms("Taux d'HbA1C anormal, patient fumeur", DefaultLexicon())
	assert.Equal(t, []string{"HbA1C", "Fumeur", "Anormal"}, got)
	assert.Nil(t, MatchedTerms("", DefaultLexicon()))
}

func TestNewLexicon_DropsBlanksAndDuplicates(t *testing.T) {
	lex := NewLexicon("Poids", " ", "poids", "Taille")
	assert.Equal(t, []string{"Poids", "Taille"}, lex.Terms())
	assert.Equal(t, 13, DefaultLexicon().Len())
}

func TestLexicon_TermsReturnsCopy(t *testing.T) {
	lex := DefaultLexicon()
	terms := lex.Terms()
	terms[0] = "mutated"
	assert.Equal(t, "HbA1C", lex.Terms()[0])
}

func TestLoadLexiconFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("terms:\n  - Glycémie\n  - Insuline\n"), 0o600))

	lex, err := LoadLexiconFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Glycémie", "Insuline"}, lex.Terms())
}

func TestLoadLexiconFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("terms: []\n"), 0o600))

	_, err := LoadLexiconFile(path)
	assert.Error(t, err)
}

func TestLoadLexiconFile_Missing(t *testing.T) {
	_, err := LoadLexiconFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadLexiconFile_BundledMatchesDefault(t *testing.T) {
	lex, err := LoadLexiconFile(filepath.Join("..", "..", "config", "lexicon.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultLexicon().Terms(), lex.Terms())
}
