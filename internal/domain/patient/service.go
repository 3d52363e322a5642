package patient

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/medilabo/medilabo/pkg/diabetesrisk"
)

// Service exposes the read side of the patient store to the risk engine.
type Service struct {
	patients PatientRepository
	now      func() time.Time
}

func NewService(patients PatientRepository) *Service {
	return &Service{patients: patients, now: time.Now}
}

// ParseID converts an external patient identifier to a store key.
func ParseID(patientID string) (int64, bool) {
	id, err := strconv.ParseInt(patientID, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (s *Service) GetPatient(ctx context.Context, patientID string) (*Patient, error) {
	id, ok := ParseID(patientID)
	if !ok {
		return nil, ErrNotFound
	}
	return s.patients.GetByID(ctx, id)
}

// Age returns the patient's age in completed years as of today.
func (s *Service) Age(ctx context.Context, patientID string) (int, error) {
	p, err := s.GetPatient(ctx, patientID)
	if err != nil {
		return 0, err
	}
	if p.BirthDate == nil {
		return 0, fmt.Errorf("patient %s: %w", patientID, diabetesrisk.ErrMissingBirthDate)
	}
	return diabetesrisk.AgeOn(*p.BirthDate, s.now()), nil
}

// Demographics implements diabetesrisk.PatientSource.
func (s *Service) Demographics(ctx context.Context, patientID string) (diabetesrisk.Demographics, error) {
	p, err := s.GetPatient(ctx, patientID)
	if errors.Is(err, ErrNotFound) {
		return diabetesrisk.Demographics{}, diabetesrisk.ErrPatientNotFound
	}
	if err != nil {
		return diabetesrisk.Demographics{}, fmt.Errorf("get patient: %w", err)
	}
	if p.BirthDate == nil {
		return diabetesrisk.Demographics{}, fmt.Errorf("patient %s: %w", patientID, diabetesrisk.ErrMissingBirthDate)
	}
	gender := ""
	if p.Gender != nil {
		gender = *p.Gender
	}
	return diabetesrisk.Demographics{
		Age: diabetesrisk.AgeOn(*p.BirthDate, s.now()),
		Sex: diabetesrisk.ParseSex(gender),
	}, nil
}
