package attendance

import (
	"fmt"
	"time"
)

// TimeState is the classification of a timestamp against the check-in window.
type TimeState string

const (
	TimeBeforeWindow TimeState = "BEFORE_WINDOW"
	TimeOnTime       TimeState = "ON_TIME"
	TimeLate         TimeState = "LATE"
)

// ClockTime is a time-of-day boundary, date-independent.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses a "HH:MM" string.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c ClockTime) secondsOfDay() int {
	return (c.Hour*60 + c.Minute) * 60
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Policy holds the attendance rules the decision engine runs against.
// It is built once from configuration and passed in at construction.
type Policy struct {
	WindowStart            ClockTime
	WindowEnd              ClockTime
	DefaultRadiusMeters    int
	MissingHomeMarksAbsent bool
	AdminCanResolve        bool
}

// ClassifyTime places now relative to the daily check-in window. Only the
// time-of-day component is compared; both window boundaries are inclusive.
func (p Policy) ClassifyTime(now time.Time) TimeState {
	sec := (now.Hour()*60+now.Minute())*60 + now.Second()

	switch {
	case sec < p.WindowStart.secondsOfDay():
		return TimeBeforeWindow
	case sec <= p.WindowEnd.secondsOfDay():
		return TimeOnTime
	default:
		return TimeLate
	}
}
