package note

import (
	"context"
	"fmt"
	"strconv"

	"github.com/medilabo/medilabo/pkg/diabetesrisk"
)

type Service struct {
	notes NoteRepository
}

func NewService(notes NoteRepository) *Service {
	return &Service{notes: notes}
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*Note, error) {
	return s.notes.ListByPatient(ctx, patientID)
}

// NotesForPatient implements diabetesrisk.NoteSource. An identifier that is
// not a valid patient key has no notes.
func (s *Service) NotesForPatient(ctx context.Context, patientID string) ([]diabetesrisk.Note, error) {
	id, err := strconv.ParseInt(patientID, 10, 64)
	if err != nil {
		return nil, nil
	}
	records, err := s.notes.ListByPatient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	out := make([]diabetesrisk.Note, 0, len(records))
	for _, r := range records {
		out = append(out, r.ToEngine())
	}
	return out, nil
}

// ToEngine converts the stored note to the risk engine's view of it.
func (n *Note) ToEngine() diabetesrisk.Note {
	en := diabetesrisk.Note{
		ID:        n.ID.String(),
		PatientID: strconv.FormatInt(n.PatientID, 10),
		Timestamp: n.NoteDate,
		Text:      n.Text,
	}
	if n.PractitionerID != nil {
		en.AuthorID = strconv.FormatInt(*n.PractitionerID, 10)
	}
	return en
}
