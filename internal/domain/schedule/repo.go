package schedule

import "context"

type ScheduleRepository interface {
	Create(ctx context.Context, ws *WorkSchedule) error
	GetByID(ctx context.Context, id int64) (*WorkSchedule, error)
	Update(ctx context.Context, ws *WorkSchedule) error
	ListByDoctor(ctx context.Context, doctorID int64) ([]*WorkSchedule, error)
	GetActive(ctx context.Context, doctorID int64, dayOfWeek int) (*WorkSchedule, error)
}
