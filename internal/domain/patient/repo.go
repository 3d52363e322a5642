package patient

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("patient not found")

type PatientRepository interface {
	GetByID(ctx context.Context, id int64) (*Patient, error)
}
