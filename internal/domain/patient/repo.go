package patient

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no patient exists with the given id.
var ErrNotFound = errors.New("patient not found")

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByMRN(ctx context.Context, mrn string) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	ListByTherapist(ctx context.Context, therapistID uuid.UUID, limit, offset int) ([]*Patient, int, error)
	// RefreshExacerbationCounters recomputes the rolling 12-month exacerbation
	// and hospitalization counters plus last_exacerbation_date from the
	// exacerbation table, as of now.
	RefreshExacerbationCounters(ctx context.Context, patientID uuid.UUID, now time.Time) error
}
