package booking

import (
	"testing"
	"time"

	"rental-backend/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func existingBooking(id string, status models.BookingStatus, pickup, ret time.Time) models.Booking {
	return models.Booking{
		ID:        id,
		VehicleID: "veh-1",
		Status:    status,
		PickupAt:  pickup,
		ReturnAt:  ret,
	}
}

func TestCheckAvailabilityReturnDayBlocksNewPickup(t *testing.T) {
	// vehicle returned on 07-05 still needs that day for turnaround
	existing := []models.Booking{
		existingBooking("b1", models.BookingConfirmed,
			mustDate(t, "2025-07-01 10:00"), mustDate(t, "2025-07-05 10:00")),
	}

	d, err := CheckAvailability("veh-1",
		mustDate(t, "2025-07-05 12:00"), mustDate(t, "2025-07-08 12:00"), existing)
	require.NoError(t, err)
	assert.Equal(t, VerdictUnavailable, d.Verdict)
	require.Len(t, d.Conflicts, 1)
	assert.Equal(t, "b1", d.Conflicts[0].ID)
}

func TestCheckAvailabilityDayAfterReturnIsFree(t *testing.T) {
	existing := []models.Booking{
		existingBooking("b1", models.BookingConfirmed,
			mustDate(t, "2025-07-01 10:00"), mustDate(t, "2025-07-05 10:00")),
	}

	d, err := CheckAvailability("veh-1",
		mustDate(t, "2025-07-06 09:00"), mustDate(t, "2025-07-08 09:00"), existing)
	require.NoError(t, err)
	assert.Equal(t, VerdictAvailable, d.Verdict)
	assert.Empty(t, d.Conflicts)
}

func TestCheckAvailabilityCancelledNeverBlocks(t *testing.T) {
	existing := []models.Booking{
		existingBooking("b1", models.BookingCancelled,
			mustDate(t, "2025-07-01 10:00"), mustDate(t, "2025-07-05 10:00")),
	}

	d, err := CheckAvailability("veh-1",
		mustDate(t, "2025-07-02 09:00"), mustDate(t, "2025-07-04 09:00"), existing)
	require.NoError(t, err)
	assert.Equal(t, VerdictAvailable, d.Verdict)
}

func TestCheckAvailabilityListsEveryConflict(t *testing.T) {
	existing := []models.Booking{
		existingBooking("b1", models.BookingPending,
			mustDate(t, "2025-07-01 08:00"), mustDate(t, "2025-07-03 08:00")),
		existingBooking("b2", models.BookingCompleted,
			mustDate(t, "2025-07-07 08:00"), mustDate(t, "2025-07-09 08:00")),
		existingBooking("b3", models.BookingCancelled,
			mustDate(t, "2025-07-04 08:00"), mustDate(t, "2025-07-06 08:00")),
	}

	d, err := CheckAvailability("veh-1",
		mustDate(t, "2025-07-02 10:00"), mustDate(t, "2025-07-08 10:00"), existing)
	require.NoError(t, err)
	assert.Equal(t, VerdictUnavailable, d.Verdict)
	require.Len(t, d.Conflicts, 2)
	assert.Equal(t, "b1", d.Conflicts[0].ID)
	assert.Equal(t, "b2", d.Conflicts[1].ID)
}

func TestCheckAvailabilityRejectsReversedRange(t *testing.T) {
	_, err := CheckAvailability("veh-1",
		mustDate(t, "2025-07-08 10:00"), mustDate(t, "2025-07-05 10:00"), nil)
	var invalid InvalidRangeError
	require.ErrorAs(t, err, &invalid)

	// equal pickup/return is rejected too: zero whole days
	_, err = CheckAvailability("veh-1",
		mustDate(t, "2025-07-05 10:00"), mustDate(t, "2025-07-05 10:00"), nil)
	require.ErrorAs(t, err, &invalid)
}

func TestCheckAvailabilityCommutative(t *testing.T) {
	p1, r1 := mustDate(t, "2025-07-03 09:00"), mustDate(t, "2025-07-06 09:00")
	p2, r2 := mustDate(t, "2025-07-05 09:00"), mustDate(t, "2025-07-09 09:00")

	first, err := CheckAvailability("veh-1", p1, r1,
		[]models.Booking{existingBooking("x", models.BookingConfirmed, p2, r2)})
	require.NoError(t, err)
	second, err := CheckAvailability("veh-1", p2, r2,
		[]models.Booking{existingBooking("y", models.BookingConfirmed, p1, r1)})
	require.NoError(t, err)

	assert.Equal(t, first.Verdict, second.Verdict)
	assert.Equal(t, VerdictUnavailable, first.Verdict)
}

func TestDisabledDaysIdempotentAndSkipsCancelled(t *testing.T) {
	existing := []models.Booking{
		existingBooking("b1", models.BookingConfirmed,
			mustDate(t, "2025-07-01 10:00"), mustDate(t, "2025-07-02 10:00")),
		existingBooking("b2", models.BookingCancelled,
			mustDate(t, "2025-07-10 10:00"), mustDate(t, "2025-07-12 10:00")),
		existingBooking("b3", models.BookingPending,
			mustDate(t, "2025-07-02 10:00"), mustDate(t, "2025-07-03 10:00")),
	}

	first := DisabledDays(existing)
	second := DisabledDays(existing)

	assert.Equal(t, []DayKey{"2025-07-01", "2025-07-02", "2025-07-03"}, first)
	assert.Equal(t, first, second)
}

func TestDisabledDaysAgreesWithCheckAvailability(t *testing.T) {
	// both features share one day semantic: a day disabled in the calendar
	// is exactly a day whose single-day request would conflict
	existing := []models.Booking{
		existingBooking("b1", models.BookingConfirmed,
			mustDate(t, "2025-07-02 10:00"), mustDate(t, "2025-07-04 10:00")),
	}

	disabled := make(map[DayKey]bool)
	for _, d := range DisabledDays(existing) {
		disabled[d] = true
	}

	for day := 1; day <= 6; day++ {
		pickup := time.Date(2025, 7, day, 8, 0, 0, 0, time.Local)
		ret := pickup.Add(10 * time.Hour)
		d, err := CheckAvailability("veh-1", pickup, ret, existing)
		require.NoError(t, err)
		assert.Equal(t, disabled[DayOf(pickup)], d.Verdict == VerdictUnavailable,
			"day %s", DayOf(pickup))
	}
}
