package dailylog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNoLogs is returned when a patient has never submitted a daily log.
var ErrNoLogs = errors.New("no daily logs")

type Repository interface {
	Upsert(ctx context.Context, log *DailyLog) error
	GetLatest(ctx context.Context, patientID uuid.UUID) (*DailyLog, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*DailyLog, int, error)
	CountSince(ctx context.Context, patientID uuid.UUID, since time.Time) (int, error)
	CountMedicationTakenSince(ctx context.Context, patientID uuid.UUID, since time.Time) (int, error)
}
