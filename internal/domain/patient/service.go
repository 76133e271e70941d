package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var validGenders = map[string]bool{
	"male": true, "female": true, "other": true, "unknown": true,
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if p.MRN == "" {
		return fmt.Errorf("mrn is required")
	}
	if p.FirstName == "" {
		return fmt.Errorf("first_name is required")
	}
	if p.LastName == "" {
		return fmt.Errorf("last_name is required")
	}
	if p.Gender != nil && !validGenders[*p.Gender] {
		return fmt.Errorf("invalid gender: %s", *p.Gender)
	}
	if p.HeightCm != nil && *p.HeightCm <= 0 {
		return fmt.Errorf("height_cm must be positive")
	}
	if p.WeightKg != nil && *p.WeightKg <= 0 {
		return fmt.Errorf("weight_kg must be positive")
	}
	p.Active = true
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByMRN(ctx context.Context, mrn string) (*Patient, error) {
	return s.repo.GetByMRN(ctx, mrn)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if p.FirstName == "" {
		return fmt.Errorf("first_name is required")
	}
	if p.LastName == "" {
		return fmt.Errorf("last_name is required")
	}
	if p.Gender != nil && !validGenders[*p.Gender] {
		return fmt.Errorf("invalid gender: %s", *p.Gender)
	}
	if p.HeightCm != nil && *p.HeightCm <= 0 {
		return fmt.Errorf("height_cm must be positive")
	}
	if p.WeightKg != nil && *p.WeightKg <= 0 {
		return fmt.Errorf("weight_kg must be positive")
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByTherapist(ctx context.Context, therapistID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	return s.repo.ListByTherapist(ctx, therapistID, limit, offset)
}
