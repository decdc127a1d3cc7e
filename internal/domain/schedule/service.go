package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/dralina/clinic/internal/scheduling"
)

type Service struct {
	schedules ScheduleRepository
}

func NewService(schedules ScheduleRepository) *Service {
	return &Service{schedules: schedules}
}

// ResolveWindow maps a doctor and a calendar date to the working window
// that applies on that date. A nil window (with nil error) means the
// doctor does not work that day; callers treat it as zero available
// slots, never as a failure.
func (s *Service) ResolveWindow(ctx context.Context, doctorID int64, date time.Time) (*scheduling.Window, error) {
	ws, err := s.schedules.GetActive(ctx, doctorID, scheduling.WeekdayIndex(date))
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, nil
	}
	start, err := At(date, ws.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := At(date, ws.EndTime)
	if err != nil {
		return nil, err
	}
	return &scheduling.Window{Start: start, End: end}, nil
}

func (s *Service) CreateSchedule(ctx context.Context, ws *WorkSchedule) error {
	if err := ws.Validate(); err != nil {
		return err
	}
	if ws.IsActive {
		existing, err := s.schedules.GetActive(ctx, ws.DoctorID, ws.DayOfWeek)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("doctor already has an active schedule for that day")
		}
	}
	return s.schedules.Create(ctx, ws)
}

func (s *Service) UpdateSchedule(ctx context.Context, ws *WorkSchedule) error {
	current, err := s.schedules.GetByID(ctx, ws.ID)
	if err != nil {
		return err
	}
	ws.DoctorID = current.DoctorID
	if err := ws.Validate(); err != nil {
		return err
	}
	if ws.IsActive {
		existing, err := s.schedules.GetActive(ctx, ws.DoctorID, ws.DayOfWeek)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != ws.ID {
			return fmt.Errorf("doctor already has an active schedule for that day")
		}
	}
	return s.schedules.Update(ctx, ws)
}

// DeactivateSchedule retires a schedule row. Rows are kept for history;
// future availability simply stops considering them.
func (s *Service) DeactivateSchedule(ctx context.Context, id int64) error {
	ws, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		return err
	}
	ws.IsActive = false
	return s.schedules.Update(ctx, ws)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID int64) ([]*WorkSchedule, error) {
	return s.schedules.ListByDoctor(ctx, doctorID)
}
