package booking

import (
	"context"
	"time"

	"github.com/dralina/clinic/internal/scheduling"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id int64) (*Appointment, error)
	GetByToken(ctx context.Context, token string) (*Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Appointment, int, error)

	// BusyIntervals returns the occupied intervals of non-cancelled
	// appointments for the doctor whose start time falls in [from, to).
	// Interval ends are derived from the linked service's duration,
	// defaulting when the link is missing.
	BusyIntervals(ctx context.Context, doctorID int64, from, to time.Time) ([]scheduling.Interval, error)

	// BusyIntervalsStartingBefore returns the occupied intervals of
	// non-cancelled appointments starting before the given instant.
	// A nil doctorID matches appointments of every doctor; this global
	// sweep backs the legacy no-doctor overlap check.
	BusyIntervalsStartingBefore(ctx context.Context, doctorID *int64, before time.Time) ([]scheduling.Interval, error)

	// LockDoctor serializes concurrent booking writes for one doctor for
	// the duration of the surrounding transaction.
	LockDoctor(ctx context.Context, doctorID *int64) error
}

// ListFilter narrows the admin appointment listing.
type ListFilter struct {
	DoctorID *int64
	Date     *time.Time
	Status   Status
}
