package patient

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table.
//
// The exacerbation_count_last_12m / hospitalization_count_last_12m columns are
// derived caches maintained by RefreshExacerbationCounters after exacerbation
// writes. Readers treat them as-is; they may lag the exacerbation table
// between writes and refresh.
type Patient struct {
	ID                      uuid.UUID  `db:"id" json:"id"`
	MRN                     string     `db:"mrn" json:"mrn"`
	FirstName               string     `db:"first_name" json:"first_name"`
	LastName                string     `db:"last_name" json:"last_name"`
	BirthDate               *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Gender                  *string    `db:"gender" json:"gender,omitempty"`
	Phone                   *string    `db:"phone" json:"phone,omitempty"`
	Email                   *string    `db:"email" json:"email,omitempty"`
	HeightCm                *int       `db:"height_cm" json:"height_cm,omitempty"`
	WeightKg                *float64   `db:"weight_kg" json:"weight_kg,omitempty"`
	SmokingPackYears        *int       `db:"smoking_pack_years" json:"smoking_pack_years,omitempty"`
	TherapistID             *uuid.UUID `db:"therapist_id" json:"therapist_id,omitempty"`
	ExacerbationCount12M    int        `db:"exacerbation_count_last_12m" json:"exacerbation_count_last_12m"`
	HospitalizationCount12M int        `db:"hospitalization_count_last_12m" json:"hospitalization_count_last_12m"`
	LastExacerbationDate    *time.Time `db:"last_exacerbation_date" json:"last_exacerbation_date,omitempty"`
	Active                  bool       `db:"active" json:"active"`
	CreatedAt               time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt               time.Time  `db:"updated_at" json:"updated_at"`
}

// BMI returns the body mass index (kg/m², one decimal) computed from the
// recorded height and weight, or nil when either is missing.
func (p *Patient) BMI() *float64 {
	if p.HeightCm == nil || p.WeightKg == nil || *p.HeightCm <= 0 {
		return nil
	}
	heightM := float64(*p.HeightCm) / 100.0
	bmi := math.Round(*p.WeightKg/(heightM*heightM)*10) / 10
	return &bmi
}
