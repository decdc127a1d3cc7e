package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/dralina/clinic/internal/domain/clinicservice"
	"github.com/dralina/clinic/internal/domain/patient"
	"github.com/dralina/clinic/internal/platform/db"
	"github.com/dralina/clinic/internal/platform/token"
	"github.com/dralina/clinic/internal/scheduling"
)

var (
	// ErrServiceNotFound is returned when an availability or booking
	// request names an unknown service.
	ErrServiceNotFound = errors.New("service not found")

	// ErrSlotTaken is returned when the requested time overlaps an
	// existing appointment. Clients may retry with a fresh slot list.
	ErrSlotTaken = errors.New("schedule unavailable")
)

// WindowResolver yields the working window for a doctor on a date, or
// nil when the doctor does not work that day.
type WindowResolver interface {
	ResolveWindow(ctx context.Context, doctorID int64, date time.Time) (*scheduling.Window, error)
}

type Service struct {
	appts     AppointmentRepository
	patients  patient.PatientRepository
	services  clinicservice.ServiceRepository
	schedules WindowResolver
	signer    token.Signer
	logger    zerolog.Logger

	runTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

// NewService wires the booking flow. A nil pool degrades the write path
// to non-transactional execution, which unit tests rely on.
func NewService(pool *pgxpool.Pool, appts AppointmentRepository, patients patient.PatientRepository,
	services clinicservice.ServiceRepository, schedules WindowResolver, signer token.Signer,
	logger zerolog.Logger) *Service {
	s := &Service{
		appts:     appts,
		patients:  patients,
		services:  services,
		schedules: schedules,
		signer:    signer,
		logger:    logger,
	}
	s.runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		if pool == nil {
			return fn(ctx)
		}
		return db.WithTx(ctx, pool, fn)
	}
	return s
}

// AvailableSlots computes the bookable "HH:MM" start times for a doctor
// on a date, using the requested service's duration. The list is
// recomputed from current state on every call; an empty list is a valid
// result, not an error.
func (s *Service) AvailableSlots(ctx context.Context, doctorID int64, date time.Time, serviceID int64) ([]string, error) {
	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, ErrServiceNotFound
	}

	window, err := s.schedules.ResolveWindow(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	if window == nil {
		return []string{}, nil
	}

	busy, err := s.appts.BusyIntervals(ctx, doctorID, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	return scheduling.FormatClock(scheduling.SlotStarts(*window, busy, svc.Duration())), nil
}

// IsAvailable re-checks a proposed interval against current appointments.
// Unlike slot generation it applies no working-window filter, so bookings
// straddling the window edge are still caught. A nil doctorID checks
// against every doctor's appointments; legacy rows without a doctor get
// that global treatment.
func (s *Service) IsAvailable(ctx context.Context, doctorID *int64, start time.Time, duration time.Duration) (bool, error) {
	end := start.Add(duration)
	busy, err := s.appts.BusyIntervalsStartingBefore(ctx, doctorID, end)
	if err != nil {
		return false, err
	}
	proposed := scheduling.Interval{Start: start, End: end}
	for _, b := range busy {
		if proposed.Overlaps(b) {
			return false, nil
		}
	}
	return true, nil
}

// RequestBooking creates a pending appointment for the requested slot.
// The availability re-check and the insert run in one transaction under
// a per-doctor advisory lock, so two concurrent requests for the same
// slot cannot both succeed.
func (s *Service) RequestBooking(ctx context.Context, req BookingRequest) (*Appointment, error) {
	if req.Name == "" || req.Email == "" {
		return nil, fmt.Errorf("name and email are required")
	}
	start, err := time.Parse("2006-01-02T15:04", req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start_time format")
	}

	svc, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, ErrServiceNotFound
	}

	var appt *Appointment
	err = s.runTx(ctx, func(ctx context.Context) error {
		doctorID := &req.DoctorID
		if err := s.appts.LockDoctor(ctx, doctorID); err != nil {
			return err
		}

		ok, err := s.IsAvailable(ctx, doctorID, start, svc.Duration())
		if err != nil {
			return err
		}
		if !ok {
			return ErrSlotTaken
		}

		p := &patient.Patient{Name: req.Name, Email: req.Email, Phone: req.Phone}
		if err := s.patients.Upsert(ctx, p); err != nil {
			return err
		}

		tok, err := s.signer.Issue(req.Email)
		if err != nil {
			return err
		}

		appt = &Appointment{
			DoctorID:          doctorID,
			ServiceID:         &req.ServiceID,
			PatientID:         p.ID,
			StartTime:         start,
			Status:            StatusPending,
			ConfirmationToken: tok,
		}
		return s.appts.Create(ctx, appt)
	})
	if err != nil {
		return nil, err
	}

	// No email delivery here; the confirmation link is logged so an
	// operator can hand it out while the mail integration is external.
	s.logger.Info().Int64("appointment_id", appt.ID).Int64("doctor_id", req.DoctorID).
		Time("start", start).Str("confirmation_token", appt.ConfirmationToken).
		Msg("booking requested")
	return appt, nil
}

// Confirm verifies a confirmation token and promotes the matching
// pending appointment. Confirming an already-confirmed appointment is a
// no-op so that a reused email link stays friendly.
func (s *Service) Confirm(ctx context.Context, tok string) (*Appointment, error) {
	email, err := s.signer.Verify(tok)
	if err != nil {
		return nil, token.ErrInvalidToken
	}

	appt, err := s.appts.GetByToken(ctx, tok)
	if err != nil {
		return nil, token.ErrInvalidToken
	}

	switch appt.Status {
	case StatusConfirmed:
		return appt, nil
	case StatusPending:
		if err := s.appts.UpdateStatus(ctx, appt.ID, StatusConfirmed); err != nil {
			return nil, err
		}
		appt.Status = StatusConfirmed
		s.logger.Info().Int64("appointment_id", appt.ID).Str("email", email).Msg("booking confirmed")
		return appt, nil
	default:
		return nil, fmt.Errorf("booking can no longer be confirmed")
	}
}

func (s *Service) transition(ctx context.Context, id int64, to Status) (*Appointment, error) {
	appt, err := s.appts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appt.Status.canBecome(to) {
		return nil, fmt.Errorf("cannot move appointment from %s to %s", appt.Status, to)
	}
	if err := s.appts.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	appt.Status = to
	return appt, nil
}

// Cancel frees the appointment's slot. Allowed from any live state.
func (s *Service) Cancel(ctx context.Context, id int64) (*Appointment, error) {
	return s.transition(ctx, id, StatusCancelled)
}

// Complete marks a confirmed appointment as attended.
func (s *Service) Complete(ctx context.Context, id int64) (*Appointment, error) {
	return s.transition(ctx, id, StatusCompleted)
}

func (s *Service) ListAppointments(ctx context.Context, filter ListFilter, limit, offset int) ([]*Appointment, int, error) {
	return s.appts.List(ctx, filter, limit, offset)
}
