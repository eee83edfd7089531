package booking

import (
	"sort"
	"time"

	"rental-backend/internal/domain/models"
)

// Verdict tags the outcome of an availability check.
type Verdict string

const (
	// VerdictAvailable: no non-cancelled booking shares a day with the request.
	VerdictAvailable Verdict = "available"
	// VerdictUnavailable: at least one conflict; Decision lists all of them.
	VerdictUnavailable Verdict = "unavailable"
	// VerdictIndeterminate: the booking list could not be obtained. Never to
	// be treated as available.
	VerdictIndeterminate Verdict = "indeterminate"
)

// Decision is the tagged result of an availability check.
type Decision struct {
	VehicleID string           `json:"vehicleId"`
	Verdict   Verdict          `json:"verdict"`
	Conflicts []models.Booking `json:"conflicts,omitempty"`
}

// Indeterminate builds the hard-stop decision for a vehicle whose bookings
// could not be fetched.
func Indeterminate(vehicleID string) Decision {
	return Decision{VehicleID: vehicleID, Verdict: VerdictIndeterminate}
}

// CheckAvailability decides whether [pickup, ret] can be booked for a vehicle
// given its existing bookings. The check is pure over the booking list; the
// vehicle id only travels into the Decision for display and logging.
//
// Cancelled bookings never block. Every conflicting booking is returned, not
// just the first, so the caller can render each conflicting window.
//
// Overlap uses the same inclusive day-key semantics as DisabledDays; the
// calendar-disabling path and the submit-time re-check can therefore never
// disagree.
func CheckAvailability(vehicleID string, pickup, ret time.Time, existing []models.Booking) (Decision, error) {
	if !pickup.Before(ret) {
		return Decision{}, InvalidRangeError{Start: pickup, End: ret}
	}

	requested, err := DaySpan(pickup, ret)
	if err != nil {
		return Decision{}, err
	}
	want := make(map[DayKey]struct{}, len(requested))
	for _, d := range requested {
		want[d] = struct{}{}
	}

	var conflicts []models.Booking
	for _, b := range existing {
		if !b.Status.Blocks() {
			continue
		}
		span, err := DaySpan(b.PickupAt, b.ReturnAt)
		if err != nil {
			// malformed rows are rejected at the repository boundary; a
			// reversed range here means the record never passed validation
			continue
		}
		for _, d := range span {
			if _, ok := want[d]; ok {
				conflicts = append(conflicts, b)
				break
			}
		}
	}

	if len(conflicts) > 0 {
		return Decision{VehicleID: vehicleID, Verdict: VerdictUnavailable, Conflicts: conflicts}, nil
	}
	return Decision{VehicleID: vehicleID, Verdict: VerdictAvailable}, nil
}

// DisabledDays returns the sorted set of day-keys occupied by non-cancelled
// bookings, for disabling dates in the calendar widget. Calling it twice on
// the same list yields the same result.
func DisabledDays(existing []models.Booking) []DayKey {
	set := make(map[DayKey]struct{})
	for _, b := range existing {
		if !b.Status.Blocks() {
			continue
		}
		span, err := DaySpan(b.PickupAt, b.ReturnAt)
		if err != nil {
			continue
		}
		for _, d := range span {
			set[d] = struct{}{}
		}
	}

	out := make([]DayKey, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
