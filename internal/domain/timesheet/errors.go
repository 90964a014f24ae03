package timesheet

import "errors"

var (
	// ErrMalformedTime is returned when a clock string is not strict HH:MM.
	ErrMalformedTime = errors.New("clock time must be in HH:MM 24-hour format")

	// ErrInvalidPeriod is returned for a year/month outside the calendar.
	ErrInvalidPeriod = errors.New("invalid report period")

	ErrInvalidSettings = errors.New("invalid timesheet settings")
)
