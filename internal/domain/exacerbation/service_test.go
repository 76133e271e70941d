package exacerbation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/copdcare/copdcare/internal/domain/patient"
)

// -- Mock record repository --

type mockRepo struct {
	records map[uuid.UUID]*Record
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[uuid.UUID]*Record)}
}

func (m *mockRepo) Create(_ context.Context, rec *Record) error {
	rec.ID = uuid.New()
	m.records[rec.ID] = rec
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Record, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (m *mockRepo) Update(_ context.Context, rec *Record) error {
	m.records[rec.ID] = rec
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.records, id)
	return nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Record, int, error) {
	var result []*Record
	for _, rec := range m.records {
		if rec.PatientID == patientID {
			result = append(result, rec)
		}
	}
	return result, len(result), nil
}

func (m *mockRepo) CountSince(_ context.Context, patientID uuid.UUID, since time.Time) (int, error) {
	count := 0
	for _, rec := range m.records {
		if rec.PatientID == patientID && !rec.OnsetDate.Before(since) {
			count++
		}
	}
	return count, nil
}

func (m *mockRepo) CountHospitalizedSince(_ context.Context, patientID uuid.UUID, since time.Time) (int, error) {
	count := 0
	for _, rec := range m.records {
		if rec.PatientID == patientID && rec.HospitalizationRequired && !rec.OnsetDate.Before(since) {
			count++
		}
	}
	return count, nil
}

// -- Mock patient repository (tracks counter refreshes) --

type mockPatientRepo struct {
	patients  map[uuid.UUID]*patient.Patient
	refreshes int
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{patients: make(map[uuid.UUID]*patient.Patient)}
}

func (m *mockPatientRepo) Create(_ context.Context, p *patient.Patient) error {
	p.ID = uuid.New()
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, patient.ErrNotFound
	}
	return p, nil
}

func (m *mockPatientRepo) GetByMRN(_ context.Context, mrn string) (*patient.Patient, error) {
	return nil, patient.ErrNotFound
}

func (m *mockPatientRepo) Update(_ context.Context, p *patient.Patient) error {
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) List(_ context.Context, limit, offset int) ([]*patient.Patient, int, error) {
	return nil, 0, nil
}

func (m *mockPatientRepo) ListByTherapist(_ context.Context, therapistID uuid.UUID, limit, offset int) ([]*patient.Patient, int, error) {
	return nil, 0, nil
}

func (m *mockPatientRepo) RefreshExacerbationCounters(_ context.Context, patientID uuid.UUID, now time.Time) error {
	m.refreshes++
	return nil
}

// -- Tests --

func newTestService(t *testing.T) (*Service, *mockRepo, *mockPatientRepo, uuid.UUID) {
	t.Helper()
	repo := newMockRepo()
	patients := newMockPatientRepo()
	p := &patient.Patient{MRN: "MRN001", FirstName: "Ada", LastName: "Diaz"}
	if err := patients.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewService(repo, patients), repo, patients, p.ID
}

func validRecord(patientID uuid.UUID) *Record {
	return &Record{
		PatientID: patientID,
		OnsetDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Severity:  SeverityModerate,
	}
}

func TestCreateRecord(t *testing.T) {
	svc, repo, patients, patientID := newTestService(t)

	rec := validRecord(patientID)
	if err := svc.Create(context.Background(), rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
	if len(repo.records) != 1 {
		t.Errorf("expected 1 stored record, got %d", len(repo.records))
	}
	if patients.refreshes != 1 {
		t.Errorf("expected 1 counter refresh, got %d", patients.refreshes)
	}
}

func TestCreateRecord_UnknownPatient(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	rec := validRecord(uuid.New())
	err := svc.Create(context.Background(), rec)
	if !errors.Is(err, patient.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(repo.records) != 0 {
		t.Error("record must not be stored for unknown patient")
	}
}

func TestCreateRecord_InvalidSeverity(t *testing.T) {
	svc, _, _, patientID := newTestService(t)

	rec := validRecord(patientID)
	rec.Severity = "CRITICAL"
	if err := svc.Create(context.Background(), rec); err == nil {
		t.Error("expected error for invalid severity")
	}
}

func TestCreateRecord_HospitalizationDaysInvariant(t *testing.T) {
	svc, _, _, patientID := newTestService(t)

	days := 3
	rec := validRecord(patientID)
	rec.HospitalizationDays = &days
	if err := svc.Create(context.Background(), rec); err == nil {
		t.Error("expected error: days without hospitalization_required")
	}

	zero := 0
	rec2 := validRecord(patientID)
	rec2.HospitalizationRequired = true
	rec2.HospitalizationDays = &zero
	if err := svc.Create(context.Background(), rec2); err == nil {
		t.Error("expected error: non-positive hospitalization_days")
	}

	rec3 := validRecord(patientID)
	rec3.HospitalizationRequired = true
	rec3.HospitalizationDays = &days
	if err := svc.Create(context.Background(), rec3); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestUpdateRecord_RefreshesCounters(t *testing.T) {
	svc, _, patients, patientID := newTestService(t)

	rec := validRecord(patientID)
	if err := svc.Create(context.Background(), rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec.Severity = SeveritySevere
	if err := svc.Update(context.Background(), rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patients.refreshes != 2 {
		t.Errorf("expected 2 counter refreshes, got %d", patients.refreshes)
	}
}

func TestDeleteRecord_RefreshesCounters(t *testing.T) {
	svc, repo, patients, patientID := newTestService(t)

	rec := validRecord(patientID)
	if err := svc.Create(context.Background(), rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(context.Background(), rec.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.records) != 0 {
		t.Error("expected record to be deleted")
	}
	if patients.refreshes != 2 {
		t.Errorf("expected 2 counter refreshes, got %d", patients.refreshes)
	}
}

func TestDeleteRecord_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	if err := svc.Delete(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
