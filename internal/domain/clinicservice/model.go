// Package clinicservice manages the catalog of bookable services. A
// service's duration drives slot generation: every availability query is
// computed against the requested service's duration_minutes.
package clinicservice

import (
	"time"

	"github.com/dralina/clinic/internal/scheduling"
)

type ClinicService struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Duration returns the appointment length, falling back to the clinic
// default when the stored value is unusable.
func (s *ClinicService) Duration() time.Duration {
	if s == nil || s.DurationMinutes <= 0 {
		return scheduling.DefaultDuration
	}
	return time.Duration(s.DurationMinutes) * time.Minute
}
