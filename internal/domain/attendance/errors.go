package attendance

import "errors"

// Attendance domain errors
var (
	// Clock errors
	ErrAlreadyClockedIn  = errors.New("you have already clocked in today")
	ErrNotClockedIn      = errors.New("you have not clocked in yet")
	ErrAlreadyClockedOut = errors.New("you have already clocked out")
	ErrPhotoRequired     = errors.New("clock-in photo is required")
	ErrInvalidPhoto      = errors.New("clock-in photo must be a jpg or png image")

	// Break errors
	ErrBreakAlreadyStarted = errors.New("break has already been started")
	ErrBreakNotStarted     = errors.New("break has not been started")
	ErrBreakAlreadyEnded   = errors.New("break has already been ended")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrEmployeeRequired   = errors.New("an employee access token is required")
)
