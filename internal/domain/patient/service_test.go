package patient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) GetByMRN(_ context.Context, mrn string) (*Patient, error) {
	for _, p := range m.patients {
		if p.MRN == mrn {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		result = append(result, p)
	}
	return result, len(result), nil
}

func (m *mockRepo) ListByTherapist(_ context.Context, therapistID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		if p.TherapistID != nil && *p.TherapistID == therapistID {
			result = append(result, p)
		}
	}
	return result, len(result), nil
}

func (m *mockRepo) RefreshExacerbationCounters(_ context.Context, patientID uuid.UUID, now time.Time) error {
	return nil
}

// -- Tests --

func TestCreatePatient(t *testing.T) {
	svc := NewService(newMockRepo())

	p := &Patient{MRN: "MRN001", FirstName: "Ada", LastName: "Diaz"}
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
	if !p.Active {
		t.Error("expected active to be true")
	}
}

func TestCreatePatient_RequiredFields(t *testing.T) {
	svc := NewService(newMockRepo())

	cases := []*Patient{
		{FirstName: "Ada", LastName: "Diaz"},
		{MRN: "MRN001", LastName: "Diaz"},
		{MRN: "MRN001", FirstName: "Ada"},
	}
	for i, p := range cases {
		if err := svc.Create(context.Background(), p); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestCreatePatient_InvalidGender(t *testing.T) {
	svc := NewService(newMockRepo())

	gender := "robot"
	p := &Patient{MRN: "MRN001", FirstName: "Ada", LastName: "Diaz", Gender: &gender}
	if err := svc.Create(context.Background(), p); err == nil {
		t.Error("expected error for invalid gender")
	}
}

func TestCreatePatient_InvalidAnthropometrics(t *testing.T) {
	svc := NewService(newMockRepo())

	height := 0
	p := &Patient{MRN: "MRN001", FirstName: "Ada", LastName: "Diaz", HeightCm: &height}
	if err := svc.Create(context.Background(), p); err == nil {
		t.Error("expected error for non-positive height")
	}

	weight := -1.0
	p2 := &Patient{MRN: "MRN002", FirstName: "Ada", LastName: "Diaz", WeightKg: &weight}
	if err := svc.Create(context.Background(), p2); err == nil {
		t.Error("expected error for non-positive weight")
	}
}

func TestGetPatient_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Get(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetByMRN(t *testing.T) {
	svc := NewService(newMockRepo())

	p := &Patient{MRN: "MRN-42", FirstName: "Ada", LastName: "Diaz"}
	svc.Create(context.Background(), p)

	fetched, err := svc.GetByMRN(context.Background(), "MRN-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetched.ID != p.ID {
		t.Error("expected matching patient")
	}
}

func TestBMI(t *testing.T) {
	height := 170
	weight := 72.5
	p := &Patient{HeightCm: &height, WeightKg: &weight}

	bmi := p.BMI()
	if bmi == nil {
		t.Fatal("expected BMI")
	}
	if *bmi != 25.1 {
		t.Errorf("expected BMI 25.1, got %f", *bmi)
	}
}

func TestBMI_MissingInputs(t *testing.T) {
	height := 170
	weight := 72.5

	if (&Patient{HeightCm: &height}).BMI() != nil {
		t.Error("expected nil BMI without weight")
	}
	if (&Patient{WeightKg: &weight}).BMI() != nil {
		t.Error("expected nil BMI without height")
	}
	if (&Patient{}).BMI() != nil {
		t.Error("expected nil BMI with neither")
	}
}
