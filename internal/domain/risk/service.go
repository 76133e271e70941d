package risk

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/copdcare/copdcare/internal/domain/patient"
	"github.com/copdcare/copdcare/internal/domain/survey"
	"github.com/copdcare/copdcare/internal/platform/metrics"
)

// Service orchestrates risk assessments: it gathers the latest survey scores
// and the patient's rolling exacerbation counters, classifies, and persists
// an immutable assessment row.
type Service struct {
	repo     Repository
	patients patient.Repository
	surveys  survey.Repository
	now      func() time.Time
}

func NewService(repo Repository, patients patient.Repository, surveys survey.Repository) *Service {
	return &Service{repo: repo, patients: patients, surveys: surveys, now: time.Now}
}

// ComputeAssessment classifies the patient from their most recent CAT and
// mMRC responses and persists the result.
//
// Missing survey data is a hard precondition failure (wrapping
// survey.ErrNoSurveyData): classification is never performed on assumed or
// defaulted scores, and nothing is written. The exacerbation counters are
// passed through as read at assessment time; they do not affect the group.
func (s *Service) ComputeAssessment(ctx context.Context, patientID uuid.UUID) (*Assessment, error) {
	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	cat, err := s.surveys.GetLatest(ctx, patientID, survey.TypeCAT)
	if err != nil {
		return nil, fmt.Errorf("no CAT data for patient %s: %w", patientID, err)
	}
	mmrc, err := s.surveys.GetLatest(ctx, patientID, survey.TypeMMRC)
	if err != nil {
		return nil, fmt.Errorf("no mMRC data for patient %s: %w", patientID, err)
	}

	group, err := ClassifyGOLD(cat.TotalScore, mmrc.TotalScore)
	if err != nil {
		return nil, err
	}
	score, level, err := LegacyRisk(group)
	if err != nil {
		return nil, err
	}

	a := &Assessment{
		PatientID:               patientID,
		CATScore:                cat.TotalScore,
		MMRCGrade:               mmrc.TotalScore,
		ExacerbationCount12M:    p.ExacerbationCount12M,
		HospitalizationCount12M: p.HospitalizationCount12M,
		GoldGroup:               group,
		RiskScore:               score,
		RiskLevel:               level,
		AssessedAt:              s.now().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	metrics.RecordAssessmentComputed(group)
	return a, nil
}

// LatestAssessment returns the newest stored assessment, or ErrNoAssessment.
// No computation happens here.
func (s *Service) LatestAssessment(ctx context.Context, patientID uuid.UUID) (*Assessment, error) {
	return s.repo.GetLatest(ctx, patientID)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}
