package exacerbation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/copdcare/copdcare/internal/domain/patient"
	"github.com/copdcare/copdcare/internal/platform/metrics"
)

var validSeverities = map[string]bool{
	SeverityMild: true, SeverityModerate: true, SeveritySevere: true,
}

// Service manages exacerbation records. Every write refreshes the owning
// patient's rolling 12-month counters so downstream readers (risk assessment,
// KPI) see current values.
type Service struct {
	repo     Repository
	patients patient.Repository
	now      func() time.Time
}

func NewService(repo Repository, patients patient.Repository) *Service {
	return &Service{repo: repo, patients: patients, now: time.Now}
}

func (s *Service) validate(rec *Record) error {
	if rec.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if rec.OnsetDate.IsZero() {
		return fmt.Errorf("onset_date is required")
	}
	if !validSeverities[rec.Severity] {
		return fmt.Errorf("invalid severity: %s", rec.Severity)
	}
	if rec.HospitalizationDays != nil {
		if !rec.HospitalizationRequired {
			return fmt.Errorf("hospitalization_days requires hospitalization_required")
		}
		if *rec.HospitalizationDays <= 0 {
			return fmt.Errorf("hospitalization_days must be positive")
		}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, rec *Record) error {
	if err := s.validate(rec); err != nil {
		return err
	}
	if _, err := s.patients.GetByID(ctx, rec.PatientID); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return err
	}
	metrics.RecordExacerbation(rec.Severity)
	return s.patients.RefreshExacerbationCounters(ctx, rec.PatientID, s.now())
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, rec *Record) error {
	if err := s.validate(rec); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, rec); err != nil {
		return err
	}
	return s.patients.RefreshExacerbationCounters(ctx, rec.PatientID, s.now())
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.patients.RefreshExacerbationCounters(ctx, rec.PatientID, s.now())
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Record, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}
