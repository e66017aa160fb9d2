package models

import (
	"fmt"
	"time"
)

// LocalTime is a wall-clock time of day in a store's local timezone.
type LocalTime struct {
	Hour   int
	Minute int
	Second int
}

func (lt LocalTime) Before(other LocalTime) bool {
	if lt.Hour != other.Hour {
		return lt.Hour < other.Hour
	}
	if lt.Minute != other.Minute {
		return lt.Minute < other.Minute
	}
	return lt.Second < other.Second
}

func (lt LocalTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", lt.Hour, lt.Minute, lt.Second)
}

// ParseLocalTime accepts "15:04:05" or "15:04".
func ParseLocalTime(s string) (LocalTime, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return LocalTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return LocalTime{}, fmt.Errorf("invalid local time %q", s)
}

// HoursRange is one day's business-hours interval in local wall-clock time.
// End before Start denotes an overnight range spilling into the next day.
type HoursRange struct {
	Start LocalTime
	End   LocalTime
}

func (hr HoursRange) Overnight() bool {
	return hr.End.Before(hr.Start)
}

// Schedule maps a day of week (0=Monday .. 6=Sunday) to that day's hours.
// At most one range per day. An empty schedule means the store never
// declared hours and is treated as open around the clock.
type Schedule map[int]HoursRange

// DayOfWeek converts Go's Sunday-based weekday to the 0=Monday convention
// used by the business-hours data.
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
