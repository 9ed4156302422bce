/*
store.go - Persistence interfaces for availability records and shifts

PURPOSE:
  Defines the interface between the scheduling engine and the database.
  Different implementations can use SQLite or in-memory storage.

KEY INTERFACES:
  AvailabilityStore: Availability record CRUD
  ShiftStore:        Committed shift persistence and week queries
  Store:             Both, as seen inside a transaction
  TxStore:           Store plus WithTx for atomic read-check-write

STRUCTURAL VALIDATION:
  Implementations must call AvailabilityRecord.Validate before any write.
  Cross-record non-overlap for one employee is NOT enforced here; the
  resolver tolerates and reports overlap (see resolver.go).

TRANSACTIONAL CONTRACT:
  The validator's overlap check and shift insert run inside a single
  WithTx call. Implementations must serialize conflicting writes
  (database transaction or an equivalent lock) so that two racing
  proposals for the same employee and date cannot both commit.

IMPLEMENTATIONS:
  - store/sqlite: Production SQLite store (also backs the directory)
  - schedule/store: In-memory store for tests and dev
*/
package schedule

import "context"

// AvailabilityStore persists availability records.
type AvailabilityStore interface {
	// CreateAvailability persists a new record after structural validation.
	CreateAvailability(ctx context.Context, rec AvailabilityRecord) error

	// UpdateAvailability replaces an existing record's range and slot set.
	UpdateAvailability(ctx context.Context, rec AvailabilityRecord) error

	// DeleteAvailability removes a record.
	DeleteAvailability(ctx context.Context, id RecordID) error

	// GetAvailability returns a record, or ErrNotFound.
	GetAvailability(ctx context.Context, id RecordID) (*AvailabilityRecord, error)

	// ListAvailabilityByEmployee returns all records for an employee,
	// ordered by effective start.
	ListAvailabilityByEmployee(ctx context.Context, employeeID EmployeeID) ([]AvailabilityRecord, error)
}

// ShiftStore persists committed shifts.
type ShiftStore interface {
	// CreateShift persists a shift. Callers outside the validator must not
	// use this; the no-overlap invariant is enforced only at that boundary.
	CreateShift(ctx context.Context, shift ScheduledShift) error

	// DeleteShift removes a shift, or returns ErrNotFound.
	DeleteShift(ctx context.Context, id ShiftID) error

	// FindShiftsByEmployeeAndDate returns the employee's shifts on a date,
	// ordered by start time.
	FindShiftsByEmployeeAndDate(ctx context.Context, employeeID EmployeeID, date Date) ([]ScheduledShift, error)

	// ListShiftsByOrganization returns all shifts for employees of the
	// organization with date in [weekStart, weekEnd].
	ListShiftsByOrganization(ctx context.Context, orgID OrganizationID, weekStart, weekEnd Date) ([]ScheduledShift, error)
}

// Store is the combined persistence surface the engine operates on.
type Store interface {
	AvailabilityStore
	ShiftStore
}

// TxStore wraps Store with transaction support for the validator's
// read-check-write sequence.
type TxStore interface {
	Store

	// WithTx executes fn atomically. If fn returns an error the writes are
	// rolled back; concurrent conflicting WithTx calls are serialized.
	WithTx(ctx context.Context, fn func(Store) error) error
}
