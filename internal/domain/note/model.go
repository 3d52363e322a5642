package note

import (
	"time"

	"github.com/google/uuid"
)

// Note maps to the note table. Text is nil when the practitioner saved an
// empty note.
type Note struct {
	ID                    uuid.UUID `db:"id" json:"id"`
	PatientID             int64     `db:"patient_id" json:"patient_id"`
	PractitionerID        *int64    `db:"practitioner_id" json:"practitioner_id,omitempty"`
	PractitionerFirstName *string   `db:"practitioner_first_name" json:"practitioner_first_name,omitempty"`
	PractitionerLastName  *string   `db:"practitioner_last_name" json:"practitioner_last_name,omitempty"`
	NoteDate              time.Time `db:"note_date" json:"note_date"`
	Text                  *string   `db:"text" json:"text,omitempty"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
}
