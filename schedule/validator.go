/*
validator.go - Shift assignment validation and the only shift creation path

PURPOSE:
  Decides accept/reject for a proposed shift and, on accept, persists it.
  This is the single write path into the shift store; the no-overlap
  invariant for an employee's day holds because nothing else creates
  shifts.

DECISION ORDER:
  1. NoAvailability:      no eligible window for (employee, date)
  2. InvalidRange:        start >= end (checked before the window test so a
                          degenerate range is never reported as outside)
  3. OutsideAvailability: proposal not inside the min-start/max-end
                          envelope of the eligible windows
  4. DoubleBooked:        half-open overlap with a committed shift

CONCURRENCY:
  Steps 4 and the insert run inside TxStore.WithTx. Two racing proposals
  that jointly overlap commit exactly one shift; the loser observes the
  winner's row and is rejected with DoubleBooked.

EDITS:
  ReassignShift is the only edit path: delete-then-revalidate in one
  transaction, so the replacement is checked against the day without the
  shift being edited, and a rejection restores the original.

AMBIGUITY POLICY:
  When multiple records cover the date the envelope of all eligible
  windows is used, and the accepted shift carries a Warning naming
  ambiguous_availability. Rejecting outright was considered and dropped:
  overlap is a data-entry artifact the scheduler should surface, not a
  reason to block an otherwise valid assignment.
*/
package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Assignment is the validator's success result: the committed shift plus
// any warning-level diagnostics.
type Assignment struct {
	Shift   ScheduledShift
	Warning *Rejection // KindAmbiguousAvailability, or nil
}

type Validator struct {
	store TxStore
	now   func() time.Time
}

func NewValidator(store TxStore) *Validator {
	return &Validator{store: store, now: time.Now}
}

// AssignShift validates a proposal and commits the shift on success.
// All rejections are returned as *Rejection values; store failures
// surface as ErrStoreUnavailable-wrapped errors and are retryable.
func (v *Validator) AssignShift(ctx context.Context, p Proposal) (*Assignment, error) {
	var result *Assignment

	err := v.store.WithTx(ctx, func(s Store) error {
		a, err := v.assign(ctx, s, ShiftID(uuid.NewString()), p)
		if err != nil {
			return err
		}
		result = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReassignShift replaces a committed shift with a re-validated proposal.
// The old shift is deleted and the replacement validated inside one
// transaction, so the edit sees the day without the shift being edited,
// and a rejection rolls the deletion back leaving the original intact.
func (v *Validator) ReassignShift(ctx context.Context, id ShiftID, p Proposal) (*Assignment, error) {
	var result *Assignment

	err := v.store.WithTx(ctx, func(s Store) error {
		if err := s.DeleteShift(ctx, id); err != nil {
			return err
		}
		a, err := v.assign(ctx, s, id, p)
		if err != nil {
			return err
		}
		result = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// assign runs the full decision sequence against the transaction view and
// commits the shift under the given id on success.
func (v *Validator) assign(ctx context.Context, s Store, id ShiftID, p Proposal) (*Assignment, error) {
	records, err := s.ListAvailabilityByEmployee(ctx, p.EmployeeID)
	if err != nil {
		return nil, err
	}
	res := resolve(p.EmployeeID, p.Date, records)

	if len(res.Windows) == 0 {
		if res.Outcome == OutcomeNoRecord {
			return nil, reject(KindNoAvailability,
				"no availability submitted for %s on %s", p.EmployeeID, p.Date)
		}
		return nil, reject(KindNoAvailability,
			"%s is unavailable on %s", p.EmployeeID, p.Date)
	}

	if p.Start >= p.End {
		return nil, reject(KindInvalidRange,
			"start %s must precede end %s", p.Start, p.End)
	}

	envelope, _ := Envelope(res.Windows)
	if !envelope.Contains(p.Start, p.End) {
		return nil, reject(KindOutsideAvailability,
			"%s-%s extends beyond eligible window %s", p.Start, p.End, envelope)
	}

	existing, err := s.FindShiftsByEmployeeAndDate(ctx, p.EmployeeID, p.Date)
	if err != nil {
		return nil, err
	}
	for _, shift := range existing {
		if shift.Overlaps(p.Start, p.End) {
			return nil, reject(KindDoubleBooked,
				"overlaps shift %s (%s-%s)", shift.ID, shift.Start, shift.End)
		}
	}

	shift := ScheduledShift{
		ID:         id,
		EmployeeID: p.EmployeeID,
		Date:       p.Date,
		Start:      p.Start,
		End:        p.End,
		CreatedBy:  p.ProposedBy,
		CreatedAt:  v.now().UTC(),
	}
	if err := s.CreateShift(ctx, shift); err != nil {
		return nil, err
	}

	result := &Assignment{Shift: shift}
	if res.Ambiguous() {
		result.Warning = reject(KindAmbiguousAvailability,
			"%d availability records cover %s; envelope %s applied",
			len(res.Records), p.Date, envelope)
	}
	return result, nil
}
