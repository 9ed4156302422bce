/*
errors.go - Centralized error types for the scheduling engine

PURPOSE:
  All rejection kinds in one place. Every validator rejection maps to a
  stable machine-readable code so callers branch on codes, never on
  message text.

ERROR CATEGORIES:
  1. Rejection kinds - Business outcomes of a proposal (client errors)
  2. Structural errors - Malformed payloads caught at the store boundary
  3. Store errors - Persistence/transport failures (retryable)

USAGE:
  Callers branch with errors.Is or by extracting the kind:

    if errors.Is(err, schedule.ErrDoubleBooked) { ... }
    if rej, ok := schedule.AsRejection(err); ok { code := rej.Kind }

SEE ALSO:
  - validator.go: Produces Rejection values
  - api/handlers.go: Maps kinds to HTTP status codes
*/
package schedule

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNoAvailability is returned when no eligible window exists for the
	// requested employee and date.
	ErrNoAvailability = errors.New("no availability for date")

	// ErrOutsideAvailability is returned when a proposal extends beyond the
	// eligible window.
	ErrOutsideAvailability = errors.New("proposal outside availability window")

	// ErrInvalidRange is returned when a proposal's start is not strictly
	// before its end.
	ErrInvalidRange = errors.New("proposal start must precede end")

	// ErrDoubleBooked is returned when a proposal overlaps a committed shift.
	ErrDoubleBooked = errors.New("overlaps an existing shift")

	// ErrNotFound is returned when a referenced employee, organization,
	// record, or shift does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguousAvailability marks a date covered by more than one record.
	// Surfaced as a diagnostic, not a hard failure.
	ErrAmbiguousAvailability = errors.New("multiple availability records cover date")

	// ErrStoreUnavailable is returned when the store is unreachable or timed
	// out. Safe to retry.
	ErrStoreUnavailable = errors.New("store unavailable")

	// Structural validation sentinels.
	ErrMalformedRecord = errors.New("malformed availability record")
	ErrInvalidClock    = errors.New("invalid clock time")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidWeekday  = errors.New("invalid weekday")
)

// =============================================================================
// REJECTION - Typed validator outcome with a stable code
// =============================================================================

// Kind is the machine-readable code for a rejection.
type Kind string

const (
	KindNoAvailability        Kind = "no_availability"
	KindOutsideAvailability   Kind = "outside_availability"
	KindInvalidRange          Kind = "invalid_range"
	KindDoubleBooked          Kind = "double_booked"
	KindNotFound              Kind = "not_found"
	KindAmbiguousAvailability Kind = "ambiguous_availability"
	KindUnavailable           Kind = "unavailable"
	KindMalformed             Kind = "malformed"
)

// Rejection is a validator decision against a proposal. It wraps the
// matching sentinel so errors.Is keeps working.
type Rejection struct {
	Kind    Kind
	Message string
	Details map[string]string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Kind, r.Message)
}

func (r *Rejection) Unwrap() error {
	switch r.Kind {
	case KindNoAvailability:
		return ErrNoAvailability
	case KindOutsideAvailability:
		return ErrOutsideAvailability
	case KindInvalidRange:
		return ErrInvalidRange
	case KindDoubleBooked:
		return ErrDoubleBooked
	case KindNotFound:
		return ErrNotFound
	case KindAmbiguousAvailability:
		return ErrAmbiguousAvailability
	case KindUnavailable:
		return ErrStoreUnavailable
	default:
		return nil
	}
}

func reject(kind Kind, format string, args ...any) *Rejection {
	return &Rejection{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsRejection extracts a Rejection from an error chain.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsRetryable returns true if the operation might succeed on retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// IsClientError returns true if the error is a business rejection of the
// caller's input rather than a system failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNoAvailability) ||
		errors.Is(err, ErrOutsideAvailability) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrDoubleBooked) ||
		errors.Is(err, ErrMalformedRecord) ||
		errors.Is(err, ErrInvalidClock) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidWeekday)
}

// IsNotFound returns true if the error indicates a missing referent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
