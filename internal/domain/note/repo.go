package note

import "context"

type NoteRepository interface {
	ListByPatient(ctx context.Context, patientID int64) ([]*Note, error)
}
