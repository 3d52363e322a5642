package note

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

// CollectionName is the MongoDB collection the note service writes to.
const CollectionName = "note"

// mongoNote is the document shape stored by the note service.
type mongoNote struct {
	ID           bson.ObjectId      `bson:"_id,omitempty"`
	PatientID    int64              `bson:"patientId"`
	Practitioner *mongoPractitioner `bson:"medecin,omitempty"`
	NoteDate     time.Time          `bson:"dateNote"`
	Text         *string            `bson:"note,omitempty"`
}

type mongoPractitioner struct {
	ID        int64  `bson:"id"`
	LastName  string `bson:"nomMedecin"`
	FirstName string `bson:"prenomMedecin"`
}

type noteRepoMongo struct {
	session *mgo.Session
	dbName  string
}

// NewNoteRepoMongo reads notes from the note collection of dbName. The
// session is copied for every call and never closed by the repository.
func NewNoteRepoMongo(session *mgo.Session, dbName string) NoteRepository {
	return &noteRepoMongo{session: session, dbName: dbName}
}

func (r *noteRepoMongo) ListByPatient(ctx context.Context, patientID int64) ([]*Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	session := r.session.Copy()
	defer session.Close()
	if deadline, ok := ctx.Deadline(); ok {
		session.SetSocketTimeout(time.Until(deadline))
	}

	var docs []mongoNote
	err := session.DB(r.dbName).C(CollectionName).
		Find(bson.M{"patientId": patientID}).
		Sort("dateNote").
		All(&docs)
	if err != nil {
		return nil, fmt.Errorf("find notes: %w", err)
	}

	items := make([]*Note, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toNote())
	}
	return items, nil
}

func (d mongoNote) toNote() *Note {
	n := &Note{
		ID:        mongoNoteID(d.ID),
		PatientID: d.PatientID,
		NoteDate:  d.NoteDate,
		Text:      d.Text,
		CreatedAt: d.NoteDate,
	}
	if d.Practitioner != nil {
		id := d.Practitioner.ID
		n.PractitionerID = &id
		n.PractitionerFirstName = &d.Practitioner.FirstName
		n.PractitionerLastName = &d.Practitioner.LastName
	}
	return n
}

// mongoNoteID derives a stable UUID from an ObjectId so notes from both
// stores share one identifier type.
func mongoNoteID(oid bson.ObjectId) uuid.UUID {
	if !oid.Valid() {
		return uuid.Nil
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(oid.Hex()))
}
