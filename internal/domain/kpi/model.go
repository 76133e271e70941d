package kpi

import (
	"time"

	"github.com/google/uuid"
)

// Dashboard is the per-patient KPI view. It is assembled on every request;
// nothing is cached. Sections are independent: a section with no underlying
// data is nil (or carries nil fields) without affecting the rest.
type Dashboard struct {
	PatientID   uuid.UUID  `json:"patient_id"`
	GeneratedAt time.Time  `json:"generated_at"`
	Adherence   *Adherence `json:"adherence"`
	Health      *Health    `json:"health"`
	Surveys     *Surveys   `json:"surveys"`
	Risk        *Risk      `json:"risk"`
	Activity    *Activity  `json:"activity"`
}

// Adherence covers the trailing 30 days. MedicationAdherenceRate is nil when
// no logs were submitted in the window: no data is not the same as 0%.
type Adherence struct {
	WindowDays              int      `json:"window_days"`
	LogsSubmitted           int      `json:"logs_submitted"`
	LogSubmissionRate       float64  `json:"log_submission_rate"`
	MedicationAdherenceRate *float64 `json:"medication_adherence_rate"`
	SurveyCompletionRate    float64  `json:"survey_completion_rate"`
}

// Health passes the latest daily-log vitals through unmodified and derives
// BMI from the patient record.
type Health struct {
	Vitals       map[string]interface{} `json:"vitals,omitempty"`
	SymptomScore *int                   `json:"symptom_score,omitempty"`
	BMI          *float64               `json:"bmi,omitempty"`
}

// Surveys holds the latest totals per instrument, each independently nil when
// the patient has never submitted that instrument.
type Surveys struct {
	CATScore     *int    `json:"cat_score,omitempty"`
	CATSeverity  *string `json:"cat_severity,omitempty"`
	MMRCGrade    *int    `json:"mmrc_grade,omitempty"`
	MMRCSeverity *string `json:"mmrc_severity,omitempty"`
}

type Risk struct {
	GoldGroup  string    `json:"gold_group"`
	RiskScore  int       `json:"risk_score"`
	RiskLevel  string    `json:"risk_level"`
	AssessedAt time.Time `json:"assessed_at"`
}

type Activity struct {
	LastLogDate      *time.Time `json:"last_log_date,omitempty"`
	DaysSinceLastLog *int       `json:"days_since_last_log,omitempty"`
}
