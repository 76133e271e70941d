package survey

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/copdcare/copdcare/internal/platform/metrics"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// trendWindow is how many most-recent responses feed trend analysis.
const trendWindow = 6

// Submit scores a questionnaire submission and persists the immutable
// response. mMRC submissions carry a single "grade" answer.
func (s *Service) Submit(ctx context.Context, patientID uuid.UUID, surveyType Type, answers map[string]int) (*SurveyResponse, error) {
	if patientID == uuid.Nil {
		return nil, fmt.Errorf("patient_id is required")
	}

	var (
		total    int
		severity string
		err      error
	)
	switch surveyType {
	case TypeCAT:
		total, severity, err = ScoreCAT(answers)
	case TypeMMRC:
		grade, ok := answers["grade"]
		if !ok {
			return nil, fmt.Errorf("mMRC submission requires a grade answer")
		}
		total, severity, err = ScoreMMRC(grade)
	default:
		return nil, fmt.Errorf("unknown survey type: %s", surveyType)
	}
	if err != nil {
		return nil, err
	}

	sr := &SurveyResponse{
		PatientID:     patientID,
		SurveyType:    surveyType,
		Answers:       answers,
		TotalScore:    total,
		SeverityLevel: severity,
	}
	if err := s.repo.Create(ctx, sr); err != nil {
		return nil, err
	}

	metrics.RecordSurveyScored(string(surveyType), severity)
	return sr, nil
}

// Latest returns the most recent response of the given type, or
// ErrNoSurveyData when the patient has never submitted one.
func (s *Service) Latest(ctx context.Context, patientID uuid.UUID, surveyType Type) (*SurveyResponse, error) {
	return s.repo.GetLatest(ctx, patientID, surveyType)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, surveyType Type, limit, offset int) ([]*SurveyResponse, int, error) {
	return s.repo.ListByPatient(ctx, patientID, surveyType, limit, offset)
}

// Trend classifies the direction of the patient's recent score history.
func (s *Service) Trend(ctx context.Context, patientID uuid.UUID, surveyType Type) (string, error) {
	items, _, err := s.repo.ListByPatient(ctx, patientID, surveyType, trendWindow, 0)
	if err != nil {
		return "", err
	}

	// ListByPatient returns newest first; trend wants chronological order.
	scores := make([]int, len(items))
	for i, sr := range items {
		scores[len(items)-1-i] = sr.TotalScore
	}

	return AnalyzeTrend(surveyType, scores)
}
