package exacerbation

import (
	"time"

	"github.com/google/uuid"
)

// Severity of an acute deterioration episode.
const (
	SeverityMild     = "MILD"
	SeverityModerate = "MODERATE"
	SeveritySevere   = "SEVERE"
)

// Record maps to the exacerbation_record table. HospitalizationDays must be
// nil unless HospitalizationRequired is set, and positive when present; the
// service enforces this on every write.
type Record struct {
	ID                      uuid.UUID  `db:"id" json:"id"`
	PatientID               uuid.UUID  `db:"patient_id" json:"patient_id"`
	OnsetDate               time.Time  `db:"onset_date" json:"onset_date"`
	Severity                string     `db:"severity" json:"severity"`
	HospitalizationRequired bool       `db:"hospitalization_required" json:"hospitalization_required"`
	AntibioticsRequired     bool       `db:"antibiotics_required" json:"antibiotics_required"`
	SteroidsRequired        bool       `db:"steroids_required" json:"steroids_required"`
	HospitalizationDays     *int       `db:"hospitalization_days" json:"hospitalization_days,omitempty"`
	Notes                   *string    `db:"notes" json:"notes,omitempty"`
	RecordedBy              *uuid.UUID `db:"recorded_by" json:"recorded_by,omitempty"`
	CreatedAt               time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt               time.Time  `db:"updated_at" json:"updated_at"`
}
