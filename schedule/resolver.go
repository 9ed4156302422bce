/*
resolver.go - Maps (employee, date) to eligible availability windows

PURPOSE:
  The resolver selects the availability records whose effective range
  covers a date, extracts the matching weekday's slot from each, and
  returns the eligible windows plus every slot considered. Callers (the
  validator, the API) decide policy; the resolver only reports.

ALGORITHM:
  1. Load all records for the employee
  2. Keep records with EffectiveStart <= date < EffectiveEnd
  3. From each, take the slot for the date's weekday
  4. A slot yields a window iff Available; AllDay yields [00:00, 24:00)

OUTCOMES:
  NoRecord:    no record covers the date ("no schedule submitted")
  Unavailable: record(s) cover the date but the weekday is declared off
  Unambiguous: exactly one covering record produced window(s)
  Ambiguous:   multiple covering records produced windows; all returned

  NoRecord and Unavailable are deliberately distinct: the UI renders
  "nothing submitted" and "submitted as unavailable" differently.

IDEMPOTENCE:
  Resolve is a pure function of store state; resolving twice without
  intervening writes yields identical results.
*/
package schedule

import (
	"context"
	"sort"
)

// =============================================================================
// RESOLUTION - Tagged outcome of a (employee, date) lookup
// =============================================================================

type Outcome string

const (
	OutcomeNoRecord    Outcome = "no_record"
	OutcomeUnavailable Outcome = "unavailable"
	OutcomeUnambiguous Outcome = "unambiguous"
	OutcomeAmbiguous   Outcome = "ambiguous"
)

// SlotDecision is one considered slot with its eligibility verdict,
// returned for diagnostics and UI rendering.
type SlotDecision struct {
	RecordID RecordID
	Slot     DailySlot
	Eligible bool
	Window   Window // zero when not eligible
}

// Resolution is the full answer for one (employee, date) pair.
type Resolution struct {
	EmployeeID EmployeeID
	Date       Date
	Outcome    Outcome
	Windows    []Window       // eligible windows, possibly empty
	Slots      []SlotDecision // every slot considered
	Records    []RecordID     // covering records; len > 1 means overlap
}

// Ambiguous reports whether more than one record covered the date.
// Overlap is tolerated and reported, never silently collapsed.
func (r Resolution) Ambiguous() bool { return len(r.Records) > 1 }

// =============================================================================
// RESOLVER
// =============================================================================

type Resolver struct {
	store AvailabilityStore
}

func NewResolver(store AvailabilityStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve computes the eligible windows for an employee on a date.
func (rs *Resolver) Resolve(ctx context.Context, employeeID EmployeeID, date Date) (Resolution, error) {
	records, err := rs.store.ListAvailabilityByEmployee(ctx, employeeID)
	if err != nil {
		return Resolution{}, err
	}
	return resolve(employeeID, date, records), nil
}

// resolve is the pure core, shared with the validator's in-transaction path.
func resolve(employeeID EmployeeID, date Date, records []AvailabilityRecord) Resolution {
	res := Resolution{EmployeeID: employeeID, Date: date}

	var covering []AvailabilityRecord
	for _, rec := range records {
		if rec.Covers(date) {
			covering = append(covering, rec)
		}
	}
	// Deterministic output regardless of store ordering
	sort.Slice(covering, func(i, j int) bool {
		if !covering[i].EffectiveStart.Equal(covering[j].EffectiveStart) {
			return covering[i].EffectiveStart.Before(covering[j].EffectiveStart)
		}
		return covering[i].ID < covering[j].ID
	})

	if len(covering) == 0 {
		res.Outcome = OutcomeNoRecord
		return res
	}

	recordsWithWindows := 0
	for _, rec := range covering {
		res.Records = append(res.Records, rec.ID)
		slot := rec.SlotFor(date)
		window, eligible := slot.Window()
		res.Slots = append(res.Slots, SlotDecision{
			RecordID: rec.ID,
			Slot:     slot,
			Eligible: eligible,
			Window:   window,
		})
		if eligible {
			res.Windows = append(res.Windows, window)
			recordsWithWindows++
		}
	}

	switch {
	case len(res.Windows) == 0:
		res.Outcome = OutcomeUnavailable
	case recordsWithWindows > 1:
		res.Outcome = OutcomeAmbiguous
	default:
		res.Outcome = OutcomeUnambiguous
	}
	return res
}
