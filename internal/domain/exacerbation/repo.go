package exacerbation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no record exists with the given id.
var ErrNotFound = errors.New("exacerbation record not found")

type Repository interface {
	Create(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Record, int, error)
	CountSince(ctx context.Context, patientID uuid.UUID, since time.Time) (int, error)
	CountHospitalizedSince(ctx context.Context, patientID uuid.UUID, since time.Time) (int, error)
}
