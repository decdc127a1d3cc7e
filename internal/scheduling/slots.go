// Package scheduling holds the pure availability math for appointment
// booking: half-open interval overlap and slot enumeration inside a
// doctor's working window.
package scheduling

import "time"

const (
	// SlotStep is the fixed granularity at which candidate start times
	// are generated.
	SlotStep = 15 * time.Minute

	// DefaultDuration is assumed for appointments whose service link is
	// missing.
	DefaultDuration = 30 * time.Minute
)

// Interval is a half-open time interval [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals share at least one
// instant: startA < endB && endA > startB. Touching endpoints do not
// overlap.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && endA.After(startB)
}

// Overlaps reports whether iv and other share at least one instant.
func (iv Interval) Overlaps(other Interval) bool {
	return Overlaps(iv.Start, iv.End, other.Start, other.End)
}

// Window is the working window [Start, End) of a doctor on a given date.
type Window struct {
	Start time.Time
	End   time.Time
}

// WeekdayIndex maps a date to the schedule convention Monday=0..Sunday=6.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// SlotStarts enumerates the free candidate start times inside w, stepping
// from w.Start in SlotStep increments. A candidate t is emitted when the
// proposed interval [t, t+duration) fits inside the window and overlaps
// none of the busy intervals. Iteration stops at the first candidate whose
// end would exceed the window, so the result is finite and ordered.
func SlotStarts(w Window, busy []Interval, duration time.Duration) []time.Time {
	slots := []time.Time{}
	if duration <= 0 {
		return slots
	}
	for t := w.Start; ; t = t.Add(SlotStep) {
		end := t.Add(duration)
		if end.After(w.End) {
			break
		}
		proposed := Interval{Start: t, End: end}
		free := true
		for _, b := range busy {
			if proposed.Overlaps(b) {
				free = false
				break
			}
		}
		if free {
			slots = append(slots, t)
		}
	}
	return slots
}

// FormatClock renders start times as zero-padded 24-hour "HH:MM" strings.
func FormatClock(ts []time.Time) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Format("15:04")
	}
	return out
}
