package timesheet

import "fmt"

const (
	DefaultStandardDayHours = 7.5
	DefaultNightStartHour   = 22
	DefaultNightEndHour     = 5
)

// Settings configures the time accounting engine.
// The night window covers hours h with NightStartHour <= h < NightEndHour, wrapping past
// midnight when NightStartHour > NightEndHour. Equal bounds mean no night window.
type Settings struct {
	StandardDayHours float64
	NightStartHour   int
	NightEndHour     int
}

func DefaultSettings() Settings {
	return Settings{
		StandardDayHours: DefaultStandardDayHours,
		NightStartHour:   DefaultNightStartHour,
		NightEndHour:     DefaultNightEndHour,
	}
}

func (s Settings) Validate() error {
	if s.StandardDayHours < 0 || s.StandardDayHours > 24 {
		return fmt.Errorf("%w: standard day hours %.2f out of range 0-24", ErrInvalidSettings, s.StandardDayHours)
	}
	if s.NightStartHour < 0 || s.NightStartHour > 23 {
		return fmt.Errorf("%w: night start hour %d out of range 0-23", ErrInvalidSettings, s.NightStartHour)
	}
	if s.NightEndHour < 0 || s.NightEndHour > 23 {
		return fmt.Errorf("%w: night end hour %d out of range 0-23", ErrInvalidSettings, s.NightEndHour)
	}
	return nil
}

// IsNightHour reports whether an hour of day (0-23) falls inside the night window.
func (s Settings) IsNightHour(hour int) bool {
	switch {
	case s.NightStartHour > s.NightEndHour:
		return hour >= s.NightStartHour || hour < s.NightEndHour
	case s.NightStartHour < s.NightEndHour:
		return hour >= s.NightStartHour && hour < s.NightEndHour
	default:
		return false
	}
}
