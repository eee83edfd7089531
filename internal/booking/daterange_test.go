package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local)
	require.NoError(t, err)
	return parsed
}

func TestDaySpanInclusiveEndpoints(t *testing.T) {
	span, err := DaySpan(mustDate(t, "2025-07-01 14:30"), mustDate(t, "2025-07-03 09:00"))
	require.NoError(t, err)
	assert.Equal(t, []DayKey{"2025-07-01", "2025-07-02", "2025-07-03"}, span)
}

func TestDaySpanSameDay(t *testing.T) {
	span, err := DaySpan(mustDate(t, "2025-07-01 08:00"), mustDate(t, "2025-07-01 18:00"))
	require.NoError(t, err)
	assert.Equal(t, []DayKey{"2025-07-01"}, span)
}

func TestDaySpanIgnoresTimeOfDay(t *testing.T) {
	a, err := DaySpan(mustDate(t, "2025-07-01 23:59"), mustDate(t, "2025-07-02 00:01"))
	require.NoError(t, err)
	b, err := DaySpan(mustDate(t, "2025-07-01 00:00"), mustDate(t, "2025-07-02 23:59"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDaySpanReversedRange(t *testing.T) {
	_, err := DaySpan(mustDate(t, "2025-07-05 00:00"), mustDate(t, "2025-07-01 00:00"))
	var invalid InvalidRangeError
	require.ErrorAs(t, err, &invalid)
}

func TestDayCountMatchesSpanLength(t *testing.T) {
	pickup := mustDate(t, "2025-07-01 00:00")
	ret := mustDate(t, "2025-07-03 00:00")

	count, err := DayCount(pickup, ret)
	require.NoError(t, err)
	span, err := DaySpan(pickup, ret)
	require.NoError(t, err)

	// one consistent definition: inclusive day-keys spanned
	assert.Equal(t, 3, count)
	assert.Len(t, span, count)
}

func TestDaySpanCrossesMonthBoundary(t *testing.T) {
	span, err := DaySpan(mustDate(t, "2025-07-30 10:00"), mustDate(t, "2025-08-02 10:00"))
	require.NoError(t, err)
	assert.Equal(t, []DayKey{"2025-07-30", "2025-07-31", "2025-08-01", "2025-08-02"}, span)
}
