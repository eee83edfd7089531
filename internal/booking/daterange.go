package booking

import (
	"fmt"
	"time"
)

const dayKeyLayout = "2006-01-02"

// DayKey is a calendar date in YYYY-MM-DD form, stripped of time-of-day.
// It is the atomic unit of occupancy: a vehicle either has a booking on a
// day or it does not.
type DayKey string

// InvalidRangeError is returned when a requested range is reversed. It is
// always caller-correctable.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e InvalidRangeError) Error() string {
	return fmt.Sprintf("rentang tanggal tidak valid: %s sampai %s",
		e.Start.Format(dayKeyLayout), e.End.Format(dayKeyLayout))
}

// DayOf returns the day-key of t in t's own location.
func DayOf(t time.Time) DayKey {
	return DayKey(t.Format(dayKeyLayout))
}

// truncateDay drops the time component, keeping the location.
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaySpan expands start..end into the ordered inclusive list of day-keys the
// range occupies. Both the pickup day and the return day count as occupied:
// a vehicle returned on day N still needs that day for turnaround, so it is
// not available for a new pickup on day N.
//
// Start and end may fall on the same day (a one-day span). A reversed range
// fails with InvalidRangeError.
func DaySpan(start, end time.Time) ([]DayKey, error) {
	s := truncateDay(start)
	e := truncateDay(end)
	if e.Before(s) {
		return nil, InvalidRangeError{Start: start, End: end}
	}

	out := make([]DayKey, 0, 4)
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		out = append(out, DayOf(d))
	}
	return out, nil
}

// DayCount returns the inclusive number of calendar days the range spans.
// This is the day count the pricing calculator charges for, so pricing and
// availability always share one definition of "a day".
func DayCount(start, end time.Time) (int, error) {
	span, err := DaySpan(start, end)
	if err != nil {
		return 0, err
	}
	return len(span), nil
}
