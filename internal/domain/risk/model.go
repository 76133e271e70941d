package risk

import (
	"time"

	"github.com/google/uuid"
)

// Assessment maps to the risk_assessment table. Rows are immutable and
// append-only; the patient's current classification is the newest row by
// assessed_at. The exacerbation counters are the values read at assessment
// time, kept for audit; RiskScore/RiskLevel are always the legacy projection
// of GoldGroup.
type Assessment struct {
	ID                      uuid.UUID `db:"id" json:"id"`
	PatientID               uuid.UUID `db:"patient_id" json:"patient_id"`
	CATScore                int       `db:"cat_score" json:"cat_score"`
	MMRCGrade               int       `db:"mmrc_grade" json:"mmrc_grade"`
	ExacerbationCount12M    int       `db:"exacerbation_count_last_12m" json:"exacerbation_count_last_12m"`
	HospitalizationCount12M int       `db:"hospitalization_count_last_12m" json:"hospitalization_count_last_12m"`
	GoldGroup               string    `db:"gold_group" json:"gold_group"`
	RiskScore               int       `db:"risk_score" json:"risk_score"`
	RiskLevel               string    `db:"risk_level" json:"risk_level"`
	AssessedAt              time.Time `db:"assessed_at" json:"assessed_at"`
}
