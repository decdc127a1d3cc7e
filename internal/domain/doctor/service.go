package doctor

import (
	"context"
	"fmt"
)

type Service struct {
	doctors DoctorRepository
}

func NewService(doctors DoctorRepository) *Service {
	return &Service{doctors: doctors}
}

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if d.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	return s.doctors.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) UpdateDoctor(ctx context.Context, d *Doctor) error {
	if d.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	return s.doctors.Update(ctx, d)
}

// DeactivateDoctor hides a doctor from the public site. Rows are never
// deleted so that past appointments keep their reference.
func (s *Service) DeactivateDoctor(ctx context.Context, id int64) error {
	d, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return err
	}
	d.Active = false
	return s.doctors.Update(ctx, d)
}

func (s *Service) ListDoctors(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, limit, offset)
}

func (s *Service) ListActiveDoctors(ctx context.Context) ([]*Doctor, error) {
	return s.doctors.ListActive(ctx)
}
