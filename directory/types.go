/*
Package directory manages the people side of the scheduler: organizations,
employees, and the manager-submitted hire requests that need admin approval.

PURPOSE:
  The scheduling engine (package schedule) only needs employee and
  organization identifiers; everything about who those people are lives
  here. The package also owns the invitation side channel: creating an
  employee triggers a best-effort invite that never rolls back the write
  that caused it.

LIFECYCLES:
  Employee:       created directly (non-Manager actor) or promoted from a
                  PendingRequest on admin approval; deactivated (soft) and
                  later reactivated by email
  PendingRequest: created by a Manager; destroyed on approval (becomes an
                  Employee plus an invite) or rejection (deleted outright)

EMAIL:
  Unique per employee, case-insensitive. Stores index the normalized
  (lowercased) form; NormalizeEmail is the single normalization point.
*/
package directory

import (
	"errors"
	"strings"
	"time"

	"github.com/warp/shift-engine/schedule"
)

// Position values with built-in meaning. Anything else ("Developer",
// "Designer", ...) is a free-form role with no special privileges.
const (
	PositionAdmin   = "Admin"
	PositionManager = "Manager"
)

var (
	// ErrDuplicateEmail is returned when an employee with the same
	// normalized email already exists.
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrForbidden is returned when the actor's role does not permit the
	// operation.
	ErrForbidden = errors.New("actor not permitted")

	// ErrInactive is returned when an operation targets a deactivated
	// employee without reactivating it first.
	ErrInactive = errors.New("employee is deactivated")
)

// Actor is the caller identity attached to every operation: resolved by
// the API layer's identity provider and passed explicitly, never read
// from ambient state.
type Actor struct {
	SubjectID      string
	Role           string
	OrganizationID *schedule.OrganizationID
}

func (a Actor) IsAdmin() bool   { return a.Role == PositionAdmin }
func (a Actor) IsManager() bool { return a.Role == PositionManager }

type Organization struct {
	ID        schedule.OrganizationID
	Name      string
	Location  string
	CreatedAt time.Time
}

type Employee struct {
	ID             schedule.EmployeeID
	Name           string
	Email          string // normalized lowercase
	Position       string
	OrganizationID *schedule.OrganizationID // nil for platform-level admins
	Active         bool
	CreatedAt      time.Time
}

// PendingRequest mirrors Employee's creation fields while a manager's
// new-hire submission awaits admin approval.
type PendingRequest struct {
	ID             string
	Name           string
	Email          string
	Position       string
	OrganizationID *schedule.OrganizationID
	RequestedBy    string
	CreatedAt      time.Time
}

// NormalizeEmail lowercases and trims an email for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
