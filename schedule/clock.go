package schedule

import (
	"fmt"
)

// =============================================================================
// CLOCK TIME - Minutes since midnight with a 24:00 end-of-day sentinel
// =============================================================================

// ClockTime is a time of day in minutes since midnight. The value 1440
// ("24:00") is a valid END marker meaning end-of-day; it is never a valid
// start. Keeping this as an integer makes window and overlap comparisons
// plain arithmetic instead of string comparison.
type ClockTime int

const (
	Midnight ClockTime = 0
	EndOfDay ClockTime = 24 * 60
)

// ParseClock parses "HH:MM" (24-hour). "24:00" is accepted and yields
// EndOfDay so stored all-day spans round-trip.
func ParseClock(s string) (ClockTime, error) {
	var hh, mm int
	if _, err := fmt.Sscanf(s, "%2d:%2d", &hh, &mm); err != nil || len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q (want HH:MM)", ErrInvalidClock, s)
	}
	if hh == 24 && mm == 0 {
		return EndOfDay, nil
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidClock, s)
	}
	return ClockTime(hh*60 + mm), nil
}

// ParseClockEnd parses a clock string in end-of-range position. A wrapped
// "00:00" here means end-of-day (midnight closing the day), not the start
// of the next one, so it maps to EndOfDay like "24:00".
func ParseClockEnd(s string) (ClockTime, error) {
	t, err := ParseClock(s)
	if err != nil {
		return 0, err
	}
	if t == Midnight {
		return EndOfDay, nil
	}
	return t, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c ClockTime) Valid() bool { return c >= Midnight && c <= EndOfDay }
