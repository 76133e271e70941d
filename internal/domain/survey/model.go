package survey

import (
	"time"

	"github.com/google/uuid"
)

// Type identifies the questionnaire instrument.
type Type string

const (
	TypeCAT  Type = "CAT"
	TypeMMRC Type = "MMRC"
)

// Severity tiers shared by both instruments.
const (
	SeverityMild       = "MILD"
	SeverityModerate   = "MODERATE"
	SeveritySevere     = "SEVERE"
	SeverityVerySevere = "VERY_SEVERE"
)

// SurveyResponse maps to the survey_response table. Rows are immutable once
// created; trend analysis depends on the full history being retained.
type SurveyResponse struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	PatientID     uuid.UUID      `db:"patient_id" json:"patient_id"`
	SurveyType    Type           `db:"survey_type" json:"survey_type"`
	Answers       map[string]int `db:"answers" json:"answers"`
	TotalScore    int            `db:"total_score" json:"total_score"`
	SeverityLevel string         `db:"severity_level" json:"severity_level"`
	SubmittedAt   time.Time      `db:"submitted_at" json:"submitted_at"`
}
