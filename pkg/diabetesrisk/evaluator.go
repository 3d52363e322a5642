package diabetesrisk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrPatientNotFound is returned by a PatientSource for an unknown patient.
	ErrPatientNotFound = errors.New("patient not found")
	// ErrMissingBirthDate is returned by a PatientSource when no age can be computed.
	ErrMissingBirthDate = errors.New("patient birth date is missing")
)

// Demographics is the minimal view of a patient needed for classification.
type Demographics struct {
	Age int
	Sex Sex
}

// PatientSource resolves the demographics of a patient.
type PatientSource interface {
	Demographics(ctx context.Context, patientID string) (Demographics, error)
}

// NoteSource returns every note recorded for a patient.
type NoteSource interface {
	NotesForPatient(ctx context.Context, patientID string) ([]Note, error)
}

// Assessment is the outcome of one evaluation.
type Assessment struct {
	PatientID   string    `json:"patient_id"`
	Tier        Tier      `json:"risk"`
	Evidence    int       `json:"evidence_count"`
	Age         int       `json:"age"`
	Sex         Sex       `json:"-"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// AgeOn returns the number of completed years between birth and now.
func AgeOn(birth, now time.Time) int {
	if now.Before(birth) {
		return 0
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// Evaluator runs the full risk evaluation for a patient. It holds no state
// between calls and is safe for concurrent use.
type Evaluator struct {
	patients PatientSource
	notes    NoteSource
	lexicon  Lexicon
	logger   zerolog.Logger
	now      func() time.Time
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLexicon replaces the default trigger terms.
func WithLexicon(lex Lexicon) Option {
	return func(e *Evaluator) { e.lexicon = lex }
}

// WithLogger sets the logger used for evaluation traces.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Evaluator) { e.logger = logger }
}

// WithClock overrides the time source stamped on assessments.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) { e.now = now }
}

func NewEvaluator(patients PatientSource, notes NoteSource, opts ...Option) *Evaluator {
	e := &Evaluator{
		patients: patients,
		notes:    notes,
		lexicon:  DefaultLexicon(),
		logger:   zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Lexicon returns the trigger terms the evaluator scans for.
func (e *Evaluator) Lexicon() Lexicon {
	return e.lexicon
}

// Evaluate classifies a patient. An unknown patient yields an assessment
// with TierPatientNotFound and a nil error; its notes are never fetched.
// Collaborator failures are returned wrapped and are not retried.
func (e *Evaluator) Evaluate(ctx context.Context, patientID string) (Assessment, error) {
	a := Assessment{PatientID: patientID, EvaluatedAt: e.now()}

	demo, err := e.patients.Demographics(ctx, patientID)
	if errors.Is(err, ErrPatientNotFound) {
		e.logger.Warn().Str("patient_id", patientID).Msg("patient not found, risk not evaluated")
		a.Tier = TierPatientNotFound
		return a, nil
	}
	if err != nil {
		return a, fmt.Errorf("fetch demographics for patient %s: %w", patientID, err)
	}

	notes, err := e.notes.NotesForPatient(ctx, patientID)
	if err != nil {
		return a, fmt.Errorf("fetch notes for patient %s: %w", patientID, err)
	}

	a.Age = demo.Age
	a.Sex = demo.Sex
	a.Evidence = CountEvidence(notes, e.lexicon)
	a.Tier = Classify(a.Evidence, demo.Age, demo.Sex)

	e.logger.Debug().
		Str("patient_id", patientID).
		Int("notes", len(notes)).
		Int("evidence", a.Evidence).
		Int("age", demo.Age).
		Stringer("sex", demo.Sex).
		Msg("evidence counted")
	e.logger.Info().
		Str("patient_id", patientID).
		Str("risk", a.Tier.Code()).
		Msg("diabetes risk evaluated")

	return a, nil
}

// EvaluateRisk is Evaluate reduced to the resulting tier.
func (e *Evaluator) EvaluateRisk(ctx context.Context, patientID string) (Tier, error) {
	a, err := e.Evaluate(ctx, patientID)
	if err != nil {
		return TierNone, err
	}
	return a.Tier, nil
}
