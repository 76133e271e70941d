package risk

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNoAssessment is returned when a patient has no stored assessment.
var ErrNoAssessment = errors.New("no risk assessment")

type Repository interface {
	Create(ctx context.Context, a *Assessment) error
	GetLatest(ctx context.Context, patientID uuid.UUID) (*Assessment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Assessment, int, error)
}
