/*
Package schedule provides the core availability and shift assignment engine.

PURPOSE:
  This package contains the domain types and algorithms for workforce
  scheduling: employees declare weekly availability templates over effective
  date ranges, and shifts may only be assigned inside the windows those
  templates produce for a concrete calendar date.

KEY CONCEPTS IN THIS FILE (types.go):
  - Weekday: Closed seven-variant enumeration, Monday-first
  - DailySlot: One weekday's declared availability within a record
  - AvailabilityRecord: Seven slots bound to an effective date range
  - Window: A half-open [start, end) time-of-day range
  - ScheduledShift: A committed assignment for an employee on a date

DESIGN PRINCIPLES:
  1. Half-open intervals everywhere: [start, end) for windows and shifts,
     [EffectiveStart, EffectiveEnd) for record applicability
  2. Minutes-since-midnight arithmetic (clock.go), never string comparison
  3. Structural validation at the store boundary: a record the resolver
     sees always has exactly one slot per weekday

EFFECTIVE RANGE CONVENTION:
  EffectiveEnd is EXCLUSIVE - the day after the last covered day. A record
  covering Monday 2024-06-03 through Sunday 2024-06-09 stores
  EffectiveEnd=2024-06-10. This single convention is applied uniformly by
  the stores, the resolver, and every consumer.

SEE ALSO:
  - clock.go: ClockTime value type with the 24:00 end-of-day sentinel
  - resolver.go: (employee, date) -> eligible windows
  - validator.go: Proposal acceptance and shift creation
*/
package schedule

import (
	"fmt"
	"time"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string
type OrganizationID string
type RecordID string
type ShiftID string

// =============================================================================
// WEEKDAY - Closed enumeration, Monday-first
// =============================================================================

type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// ParseWeekday maps a weekday name to its variant. Names are exact
// ("Monday".."Sunday"); payloads are normalized before they reach here.
func ParseWeekday(name string) (Weekday, error) {
	for i, n := range weekdayNames {
		if n == name {
			return Weekday(i), nil
		}
	}
	return Monday, fmt.Errorf("%w: %q", ErrInvalidWeekday, name)
}

// WeekdayOf resolves the Monday-first weekday of a date,
// independent of locale.
func WeekdayOf(d Date) Weekday {
	switch d.Time.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// =============================================================================
// AVAILABILITY - Slots, records, windows
// =============================================================================

// DailySlot is one weekday's declared availability.
// When AllDay is set, Start/End are ignored for eligibility; the canonical
// stored span is [00:00, 24:00). When Available is false the employee has
// explicitly declared the weekday off, which is distinct from having no
// record at all.
type DailySlot struct {
	Day       Weekday
	Available bool
	AllDay    bool
	Start     ClockTime
	End       ClockTime
}

// Window returns the eligible window the slot produces, if any.
func (s DailySlot) Window() (Window, bool) {
	if !s.Available {
		return Window{}, false
	}
	if s.AllDay {
		return Window{Start: Midnight, End: EndOfDay}, true
	}
	return Window{Start: s.Start, End: s.End}, true
}

// AvailabilityRecord binds seven daily slots to an effective date range.
// EffectiveEnd is exclusive (see package doc). Records never expire; range
// exhaustion simply stops them from being current.
type AvailabilityRecord struct {
	ID             RecordID
	EmployeeID     EmployeeID
	EffectiveStart Date
	EffectiveEnd   Date // exclusive
	Slots          [7]DailySlot
	CreatedAt      time.Time
}

// Covers reports whether the record applies to the given date.
func (r AvailabilityRecord) Covers(d Date) bool {
	return !d.Before(r.EffectiveStart) && d.Before(r.EffectiveEnd)
}

// SlotFor returns the record's slot for the date's weekday.
func (r AvailabilityRecord) SlotFor(d Date) DailySlot {
	return r.Slots[WeekdayOf(d)]
}

// Validate checks structural shape: one slot per weekday in canonical order,
// sane clock times, and a non-empty effective range. Stores call this before
// any write so the resolver never sees a malformed record.
func (r AvailabilityRecord) Validate() error {
	if r.EmployeeID == "" {
		return fmt.Errorf("%w: missing employee id", ErrMalformedRecord)
	}
	if r.EffectiveStart.IsZero() || r.EffectiveEnd.IsZero() {
		return fmt.Errorf("%w: missing effective range", ErrMalformedRecord)
	}
	if !r.EffectiveStart.Before(r.EffectiveEnd) {
		return fmt.Errorf("%w: effective range is empty (%s..%s)",
			ErrMalformedRecord, r.EffectiveStart, r.EffectiveEnd)
	}
	for i, slot := range r.Slots {
		if slot.Day != Weekday(i) {
			return fmt.Errorf("%w: slot %d is %s, want %s",
				ErrMalformedRecord, i, slot.Day, Weekday(i))
		}
		if !slot.Available || slot.AllDay {
			continue
		}
		if slot.Start < Midnight || slot.Start >= EndOfDay {
			return fmt.Errorf("%w: %s start %s out of range",
				ErrMalformedRecord, slot.Day, slot.Start)
		}
		if slot.End <= slot.Start || slot.End > EndOfDay {
			return fmt.Errorf("%w: %s window %s-%s is empty or inverted",
				ErrMalformedRecord, slot.Day, slot.Start, slot.End)
		}
	}
	return nil
}

// Window is a half-open [Start, End) time-of-day range.
type Window struct {
	Start ClockTime
	End   ClockTime
}

func (w Window) String() string { return w.Start.String() + "-" + w.End.String() }

// Contains reports whether the proposal range fits entirely inside w.
func (w Window) Contains(start, end ClockTime) bool {
	return start >= w.Start && end <= w.End
}

// Envelope collapses windows into their min-start/max-end span.
// Returns false when the list is empty.
func Envelope(windows []Window) (Window, bool) {
	if len(windows) == 0 {
		return Window{}, false
	}
	env := windows[0]
	for _, w := range windows[1:] {
		if w.Start < env.Start {
			env.Start = w.Start
		}
		if w.End > env.End {
			env.End = w.End
		}
	}
	return env, true
}

// =============================================================================
// SHIFTS
// =============================================================================

// ScheduledShift is a committed assignment. Created only through the
// validator's success path; the stores trust that invariant.
type ScheduledShift struct {
	ID         ShiftID
	EmployeeID EmployeeID
	Date       Date
	Start      ClockTime
	End        ClockTime
	CreatedBy  string
	CreatedAt  time.Time
}

// Overlaps applies the half-open overlap test against another shift
// on the same date.
func (s ScheduledShift) Overlaps(start, end ClockTime) bool {
	return s.Start < end && start < s.End
}

// Minutes returns the shift length in minutes.
func (s ScheduledShift) Minutes() int { return int(s.End - s.Start) }

// Proposal is a shift assignment request, as received from a caller.
type Proposal struct {
	EmployeeID EmployeeID
	Date       Date
	Start      ClockTime
	End        ClockTime
	ProposedBy string
}
