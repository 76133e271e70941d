package survey

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockRepo struct {
	responses []*SurveyResponse
}

func newMockRepo() *mockRepo {
	return &mockRepo{}
}

func (m *mockRepo) Create(_ context.Context, sr *SurveyResponse) error {
	sr.ID = uuid.New()
	if sr.SubmittedAt.IsZero() {
		sr.SubmittedAt = time.Now().UTC()
	}
	m.responses = append(m.responses, sr)
	return nil
}

func (m *mockRepo) GetLatest(_ context.Context, patientID uuid.UUID, surveyType Type) (*SurveyResponse, error) {
	for i := len(m.responses) - 1; i >= 0; i-- {
		sr := m.responses[i]
		if sr.PatientID == patientID && sr.SurveyType == surveyType {
			return sr, nil
		}
	}
	return nil, ErrNoSurveyData
}

// ListByPatient returns newest first, like the Postgres implementation.
func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, surveyType Type, limit, offset int) ([]*SurveyResponse, int, error) {
	var matched []*SurveyResponse
	for i := len(m.responses) - 1; i >= 0; i-- {
		sr := m.responses[i]
		if sr.PatientID == patientID && sr.SurveyType == surveyType {
			matched = append(matched, sr)
		}
	}
	total := len(matched)
	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (m *mockRepo) CountSubmittedSince(_ context.Context, patientID uuid.UUID, since time.Time) (int, error) {
	count := 0
	for _, sr := range m.responses {
		if sr.PatientID == patientID && !sr.SubmittedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// -- Tests --

func TestSubmitCAT(t *testing.T) {
	svc := NewService(newMockRepo())
	patientID := uuid.New()

	answers := map[string]int{
		"cough": 4, "mucus": 4, "chest_tightness": 3, "breathlessness": 3,
		"activity_limitation": 3, "confidence_leaving_home": 3, "sleep": 3, "energy": 2,
	}
	sr, err := svc.Submit(context.Background(), patientID, TypeCAT, answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sr.TotalScore != 25 {
		t.Errorf("expected total 25, got %d", sr.TotalScore)
	}
	if sr.SeverityLevel != SeveritySevere {
		t.Errorf("expected SEVERE, got %s", sr.SeverityLevel)
	}
	if sr.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}

	stored, err := svc.Latest(context.Background(), patientID, TypeCAT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.TotalScore != 25 || stored.SeverityLevel != SeveritySevere {
		t.Errorf("stored response does not match: %+v", stored)
	}
}

func TestSubmitCAT_InvalidAnswersNotPersisted(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	patientID := uuid.New()

	answers := catAnswers(2)
	answers["cough"] = 9
	if _, err := svc.Submit(context.Background(), patientID, TypeCAT, answers); err == nil {
		t.Fatal("expected error for out-of-range answer")
	}
	if len(repo.responses) != 0 {
		t.Error("invalid submission must not be persisted")
	}
}

func TestSubmitMMRC(t *testing.T) {
	svc := NewService(newMockRepo())
	patientID := uuid.New()

	sr, err := svc.Submit(context.Background(), patientID, TypeMMRC, map[string]int{"grade": 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sr.TotalScore != 3 {
		t.Errorf("expected total 3, got %d", sr.TotalScore)
	}
	if sr.SeverityLevel != SeveritySevere {
		t.Errorf("expected SEVERE, got %s", sr.SeverityLevel)
	}
}

func TestSubmitMMRC_GradeRequired(t *testing.T) {
	svc := NewService(newMockRepo())

	if _, err := svc.Submit(context.Background(), uuid.New(), TypeMMRC, map[string]int{}); err == nil {
		t.Error("expected error for missing grade")
	}
}

func TestSubmit_UnknownType(t *testing.T) {
	svc := NewService(newMockRepo())

	if _, err := svc.Submit(context.Background(), uuid.New(), Type("SGRQ"), map[string]int{"grade": 1}); err == nil {
		t.Error("expected error for unknown survey type")
	}
}

func TestLatest_NoData(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Latest(context.Background(), uuid.New(), TypeCAT)
	if err != ErrNoSurveyData {
		t.Errorf("expected ErrNoSurveyData, got %v", err)
	}
}

func TestTrend_WorseningFromHistory(t *testing.T) {
	svc := NewService(newMockRepo())
	patientID := uuid.New()

	// Chronological submissions: 10, 10, 18, 18.
	for _, total := range []int{10, 10, 18, 18} {
		if _, err := svc.Submit(context.Background(), patientID, TypeCAT, catAnswersTotal(t, total)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	trend, err := svc.Trend(context.Background(), patientID, TypeCAT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trend != TrendWorsening {
		t.Errorf("expected WORSENING, got %s", trend)
	}
}

func TestTrend_TooFewPoints(t *testing.T) {
	svc := NewService(newMockRepo())
	patientID := uuid.New()

	svc.Submit(context.Background(), patientID, TypeMMRC, map[string]int{"grade": 1})

	trend, err := svc.Trend(context.Background(), patientID, TypeMMRC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trend != TrendInsufficientData {
		t.Errorf("expected INSUFFICIENT_DATA, got %s", trend)
	}
}
