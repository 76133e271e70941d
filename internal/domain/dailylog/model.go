package dailylog

import (
	"time"

	"github.com/google/uuid"
)

// DailyLog maps to the daily_log table. One row per patient per calendar day;
// resubmission replaces the existing row. Vitals is a free-form map (spo2,
// heart_rate, blood_pressure, ...) passed through to dashboards unmodified.
type DailyLog struct {
	ID              uuid.UUID              `db:"id" json:"id"`
	PatientID       uuid.UUID              `db:"patient_id" json:"patient_id"`
	LogDate         time.Time              `db:"log_date" json:"log_date"`
	MedicationTaken bool                   `db:"medication_taken" json:"medication_taken"`
	Vitals          map[string]interface{} `db:"vitals" json:"vitals,omitempty"`
	SymptomScore    *int                   `db:"symptom_score" json:"symptom_score,omitempty"`
	Notes           *string                `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time              `db:"updated_at" json:"updated_at"`
}
