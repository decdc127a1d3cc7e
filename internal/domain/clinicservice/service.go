package clinicservice

import (
	"context"
	"fmt"
)

type Service struct {
	services ServiceRepository
}

func NewService(services ServiceRepository) *Service {
	return &Service{services: services}
}

func validate(cs *ClinicService) error {
	if cs.Name == "" {
		return fmt.Errorf("name is required")
	}
	if cs.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	if cs.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}

func (s *Service) CreateService(ctx context.Context, cs *ClinicService) error {
	if err := validate(cs); err != nil {
		return err
	}
	return s.services.Create(ctx, cs)
}

func (s *Service) GetService(ctx context.Context, id int64) (*ClinicService, error) {
	return s.services.GetByID(ctx, id)
}

func (s *Service) UpdateService(ctx context.Context, cs *ClinicService) error {
	if err := validate(cs); err != nil {
		return err
	}
	return s.services.Update(ctx, cs)
}

func (s *Service) DeleteService(ctx context.Context, id int64) error {
	return s.services.Delete(ctx, id)
}

func (s *Service) ListServices(ctx context.Context) ([]*ClinicService, error) {
	return s.services.List(ctx)
}
