package clinicservice

import "context"

type ServiceRepository interface {
	Create(ctx context.Context, cs *ClinicService) error
	GetByID(ctx context.Context, id int64) (*ClinicService, error)
	Update(ctx context.Context, cs *ClinicService) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*ClinicService, error)
}
