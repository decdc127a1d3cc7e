// Package schedule manages doctors' weekly working hours and resolves a
// concrete date to the working window that applies on it.
package schedule

import (
	"fmt"
	"time"
)

// WorkSchedule is one weekly recurring block of working hours for a
// doctor. DayOfWeek follows Monday=0 through Sunday=6. Start and end are
// wall-clock times in zero-padded 24-hour "HH:MM" form; the interval is
// half-open, so an 09:00-13:00 block ends exactly at 13:00.
type WorkSchedule struct {
	ID        int64     `json:"id"`
	DoctorID  int64     `json:"doctor_id"`
	DayOfWeek int       `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ParseClock validates a "HH:MM" wall-clock string and returns the hour
// and minute components.
func ParseClock(s string) (hour, min int, err error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return 0, 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	fmt.Sscanf(s, "%02d:%02d", &hour, &min)
	return hour, min, nil
}

// At anchors a "HH:MM" wall-clock string on the given date, in the date's
// location.
func At(date time.Time, clock string) (time.Time, error) {
	h, m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location()), nil
}

// Validate checks the invariants an active schedule row must satisfy.
func (ws *WorkSchedule) Validate() error {
	if ws.DoctorID == 0 {
		return fmt.Errorf("doctor_id is required")
	}
	if ws.DayOfWeek < 0 || ws.DayOfWeek > 6 {
		return fmt.Errorf("day_of_week must be between 0 (Monday) and 6 (Sunday)")
	}
	if _, _, err := ParseClock(ws.StartTime); err != nil {
		return err
	}
	if _, _, err := ParseClock(ws.EndTime); err != nil {
		return err
	}
	if ws.StartTime >= ws.EndTime {
		return fmt.Errorf("start_time must be before end_time")
	}
	return nil
}
