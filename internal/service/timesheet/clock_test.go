package timesheet

import (
	"testing"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	valid := map[string]timesheet.Clock{
		"00:00": {Hour: 0, Minute: 0},
		"09:05": {Hour: 9, Minute: 5},
		"23:59": {Hour: 23, Minute: 59},
	}
	for in, want := range valid {
		got, err := ParseClock(in)
		require.NoError(t, err, in)
		require.NotNil(t, got, in)
		assert.Equal(t, want, *got, in)
	}

	for _, in := range []string{"24:00", "9:00", "09:60", "0900", "09:00:00", "ab:cd", "-1:00", " 09:00", "09:00 ", "   "} {
		got, err := ParseClock(in)
		assert.ErrorIs(t, err, timesheet.ErrMalformedTime, in)
		assert.Nil(t, got, in)
	}
}

func TestParseClock_EmptyIsAbsent(t *testing.T) {
	got, err := ParseClock("")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

// ParseClock and request validation must agree on every input.
func TestParseClock_MatchesRequestValidation(t *testing.T) {
	for _, in := range []string{"07:45", "23:59", " 09:00", "09:00\n", "24:00", "9:00", "12:5"} {
		_, err := ParseClock(in)
		assert.Equal(t, validator.IsValidClock(in), err == nil, in)
	}
}

func TestClock_MinutesAndString(t *testing.T) {
	c := timesheet.Clock{Hour: 7, Minute: 3}
	assert.Equal(t, 423, c.Minutes())
	assert.Equal(t, "07:03", c.String())
}

func TestNormalize(t *testing.T) {
	clocks := Normalize(timesheet.DayRecord{
		Date:       "2024-05-01",
		ClockIn:    "08:30",
		ClockOut:   "25:00",
		BreakStart: "12:00",
	})

	require.NotNil(t, clocks.ClockIn)
	assert.Equal(t, 510, clocks.ClockIn.Minutes())
	assert.Nil(t, clocks.ClockOut, "malformed slot is treated as absent")
	require.NotNil(t, clocks.BreakStart)
	assert.Nil(t, clocks.BreakEnd)
}
