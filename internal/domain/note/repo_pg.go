package note

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type noteRepoPG struct{ pool *pgxpool.Pool }

func NewNoteRepoPG(pool *pgxpool.Pool) NoteRepository { return &noteRepoPG{pool: pool} }

const noteCols = `id, patient_id, practitioner_id, practitioner_first_name, practitioner_last_name,
	note_date, text, created_at`

func (r *noteRepoPG) scanNote(row pgx.Row) (*Note, error) {
	var n Note
	err := row.Scan(&n.ID, &n.PatientID, &n.PractitionerID, &n.PractitionerFirstName, &n.PractitionerLastName,
		&n.NoteDate, &n.Text, &n.CreatedAt)
	return &n, err
}

func (r *noteRepoPG) ListByPatient(ctx context.Context, patientID int64) ([]*Note, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+noteCols+` FROM note WHERE patient_id = $1 ORDER BY note_date`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Note
	for rows.Next() {
		n, err := r.scanNote(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}
