package dailylog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockRepo struct {
	logs map[string]*DailyLog // keyed by patient+date
}

func newMockRepo() *mockRepo {
	return &mockRepo{logs: make(map[string]*DailyLog)}
}

func key(patientID uuid.UUID, date time.Time) string {
	return patientID.String() + "|" + date.Format("2006-01-02")
}

func (m *mockRepo) Upsert(_ context.Context, l *DailyLog) error {
	k := key(l.PatientID, l.LogDate)
	if existing, ok := m.logs[k]; ok {
		l.ID = existing.ID
	} else {
		l.ID = uuid.New()
	}
	m.logs[k] = l
	return nil
}

func (m *mockRepo) GetLatest(_ context.Context, patientID uuid.UUID) (*DailyLog, error) {
	var latest *DailyLog
	for _, l := range m.logs {
		if l.PatientID != patientID {
			continue
		}
		if latest == nil || l.LogDate.After(latest.LogDate) {
			latest = l
		}
	}
	if latest == nil {
		return nil, ErrNoLogs
	}
	return latest, nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*DailyLog, int, error) {
	var result []*DailyLog
	for _, l := range m.logs {
		if l.PatientID == patientID {
			result = append(result, l)
		}
	}
	return result, len(result), nil
}

func (m *mockRepo) CountSince(_ context.Context, patientID uuid.UUID, since time.Time) (int, error) {
	count := 0
	for _, l := range m.logs {
		if l.PatientID == patientID && !l.LogDate.Before(since) {
			count++
		}
	}
	return count, nil
}

func (m *mockRepo) CountMedicationTakenSince(_ context.Context, patientID uuid.UUID, since time.Time) (int, error) {
	count := 0
	for _, l := range m.logs {
		if l.PatientID == patientID && l.MedicationTaken && !l.LogDate.Before(since) {
			count++
		}
	}
	return count, nil
}

// -- Tests --

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc, repo
}

func TestSubmit(t *testing.T) {
	svc, _ := newTestService()
	patientID := uuid.New()

	l := &DailyLog{
		PatientID:       patientID,
		LogDate:         time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
		MedicationTaken: true,
		Vitals:          map[string]interface{}{"spo2": 95},
	}
	if err := svc.Submit(context.Background(), l); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
}

func TestSubmit_DefaultsToToday(t *testing.T) {
	svc, _ := newTestService()

	l := &DailyLog{PatientID: uuid.New()}
	if err := svc.Submit(context.Background(), l); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if !l.LogDate.Equal(want) {
		t.Errorf("expected log date %v, got %v", want, l.LogDate)
	}
}

func TestSubmit_FutureDateRejected(t *testing.T) {
	svc, repo := newTestService()

	l := &DailyLog{
		PatientID: uuid.New(),
		LogDate:   time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
	}
	if err := svc.Submit(context.Background(), l); err == nil {
		t.Fatal("expected error for future log date")
	}
	if len(repo.logs) != 0 {
		t.Error("future-dated log must not be stored")
	}
}

func TestSubmit_SymptomScoreRange(t *testing.T) {
	svc, _ := newTestService()

	bad := 11
	l := &DailyLog{PatientID: uuid.New(), SymptomScore: &bad}
	if err := svc.Submit(context.Background(), l); err == nil {
		t.Error("expected error for symptom score above 10")
	}

	neg := -1
	l2 := &DailyLog{PatientID: uuid.New(), SymptomScore: &neg}
	if err := svc.Submit(context.Background(), l2); err == nil {
		t.Error("expected error for negative symptom score")
	}
}

func TestSubmit_PatientRequired(t *testing.T) {
	svc, _ := newTestService()

	if err := svc.Submit(context.Background(), &DailyLog{}); err == nil {
		t.Error("expected error for missing patient_id")
	}
}

func TestSubmit_SameDayReplaces(t *testing.T) {
	svc, repo := newTestService()
	patientID := uuid.New()
	date := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	first := &DailyLog{PatientID: patientID, LogDate: date, MedicationTaken: false}
	if err := svc.Submit(context.Background(), first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := &DailyLog{PatientID: patientID, LogDate: date, MedicationTaken: true}
	if err := svc.Submit(context.Background(), second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.logs) != 1 {
		t.Fatalf("expected one log per day, got %d", len(repo.logs))
	}
	if second.ID != first.ID {
		t.Error("resubmission must replace the existing row")
	}
}

func TestLatest_NoLogs(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Latest(context.Background(), uuid.New())
	if !errors.Is(err, ErrNoLogs) {
		t.Errorf("expected ErrNoLogs, got %v", err)
	}
}
