// Package booking implements appointment creation, slot availability and
// the write-time overlap check that keeps a doctor's calendar free of
// double bookings.
package booking

import "time"

type Status string

const (
	StatusPending   Status = "pending_confirmation"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// canBecome encodes the appointment lifecycle: pending is confirmed by
// token, confirmed becomes completed after the visit, and any state can
// be cancelled. Cancelled is absorbing.
func (s Status) canBecome(to Status) bool {
	switch to {
	case StatusConfirmed:
		return s == StatusPending
	case StatusCompleted:
		return s == StatusConfirmed
	case StatusCancelled:
		return s != StatusCancelled
	}
	return false
}

// Appointment occupies [StartTime, StartTime+duration) on a doctor's
// calendar, where the duration comes from the linked service. DoctorID
// and ServiceID are nullable for legacy rows imported without those
// links.
type Appointment struct {
	ID                int64     `json:"id"`
	DoctorID          *int64    `json:"doctor_id"`
	ServiceID         *int64    `json:"service_id"`
	PatientID         int64     `json:"patient_id"`
	StartTime         time.Time `json:"start_time"`
	Status            Status    `json:"status"`
	ConfirmationToken string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}

// BookingRequest is the public booking-form payload.
type BookingRequest struct {
	DoctorID  int64  `json:"doctor_id"`
	ServiceID int64  `json:"service_id"`
	StartTime string `json:"start_time"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}
