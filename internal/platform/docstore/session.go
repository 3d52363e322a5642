// Package docstore connects to the MongoDB deployment that holds practitioner
// notes when NOTE_STORE=mongo.
package docstore

import (
	"context"
	"fmt"
	"time"

	mgo "gopkg.in/mgo.v2"
)

// Dial opens a MongoDB session in monotonic mode. Callers copy the session
// per unit of work and close the original on shutdown.
func Dial(url string, timeout time.Duration) (*mgo.Session, error) {
	session, err := mgo.DialWithTimeout(url, timeout)
	if err != nil {
		return nil, fmt.Errorf("dial mongo: %w", err)
	}
	session.SetMode(mgo.Monotonic, true)
	return session, nil
}

// Pinger adapts a session to the health check's Ping(ctx) contract.
type Pinger struct {
	Session *mgo.Session
}

func (p Pinger) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := p.Session.Copy()
	defer s.Close()
	return s.Ping()
}
