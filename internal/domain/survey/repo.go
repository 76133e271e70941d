package survey

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNoSurveyData is returned when a patient has no stored response of the
// requested type. Risk classification treats this as a hard precondition
// failure; only the KPI aggregator may downgrade it.
var ErrNoSurveyData = errors.New("no survey data")

type Repository interface {
	Create(ctx context.Context, sr *SurveyResponse) error
	GetLatest(ctx context.Context, patientID uuid.UUID, surveyType Type) (*SurveyResponse, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, surveyType Type, limit, offset int) ([]*SurveyResponse, int, error)
	CountSubmittedSince(ctx context.Context, patientID uuid.UUID, since time.Time) (int, error)
}
