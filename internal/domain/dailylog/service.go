package dailylog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Submit records (or replaces) the patient's log for the given day. Future
// dates are rejected; backfilling past days is allowed.
func (s *Service) Submit(ctx context.Context, log *DailyLog) error {
	if log.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if log.LogDate.IsZero() {
		log.LogDate = s.now().UTC().Truncate(24 * time.Hour)
	}
	if log.LogDate.After(s.now()) {
		return fmt.Errorf("log_date cannot be in the future")
	}
	if log.SymptomScore != nil && (*log.SymptomScore < 0 || *log.SymptomScore > 10) {
		return fmt.Errorf("symptom_score out of range [0,10]: %d", *log.SymptomScore)
	}
	return s.repo.Upsert(ctx, log)
}

func (s *Service) Latest(ctx context.Context, patientID uuid.UUID) (*DailyLog, error) {
	return s.repo.GetLatest(ctx, patientID)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*DailyLog, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}
