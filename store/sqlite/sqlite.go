/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements schedule.TxStore and directory.Store in one place. The same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  organizations:        Tenants owning employees
  employees:            Directory records (email unique, case-insensitive)
  pending_requests:     Manager-submitted hires awaiting approval
  availability_records: Effective date ranges with slots stored as JSON
  shifts:               Committed assignments, clock times as minutes

BOUNDARY CONVENTION:
  effective_end is stored EXCLUSIVE (day after the last covered day),
  identical to the in-memory convention. No consumer compensates.

CONCURRENCY:
  sync.RWMutex serializes writers; WithTx additionally wraps the
  validator's read-check-write in a database transaction so racing
  assignments cannot both commit. In production PostgreSQL the
  database's own transaction isolation replaces the mutex.

TIMEOUTS:
  Handlers pass deadline-bound contexts. A deadline or cancellation is
  mapped to schedule.ErrStoreUnavailable, which callers treat as
  retryable rather than hanging.

WAL MODE:
  Opened with WAL and foreign keys on: readers don't block, and
  availability/shift rows cannot reference missing employees.

SEE ALSO:
  - schedule/store.go: Interface definitions and contracts
  - schedule/store/memory.go: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/shift-engine/directory"
	"github.com/warp/shift-engine/schedule"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every pooled connection to ":memory:" opens its own empty database,
	// so a concurrent query on a second connection would not see the
	// migrated schema. One connection keeps all callers on the same data.
	if strings.Contains(dbPath, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS organizations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,      -- normalized lowercase
		position TEXT NOT NULL,
		organization_id TEXT REFERENCES organizations(id),
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employees_organization
		ON employees(organization_id);

	CREATE TABLE IF NOT EXISTS pending_requests (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		position TEXT NOT NULL,
		organization_id TEXT REFERENCES organizations(id),
		requested_by TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS availability_records (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		effective_start TEXT NOT NULL,
		effective_end TEXT NOT NULL,     -- exclusive
		slots_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_availability_employee
		ON availability_records(employee_id, effective_start);

	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		date TEXT NOT NULL,
		start_min INTEGER NOT NULL,
		end_min INTEGER NOT NULL,
		created_by TEXT,
		created_at TEXT NOT NULL
	);

	-- Hot path: overlap check at assignment time
	CREATE INDEX IF NOT EXISTS idx_shifts_employee_date
		ON shifts(employee_id, date);
	CREATE INDEX IF NOT EXISTS idx_shifts_date
		ON shifts(date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// storeErr maps transport-level failures to the retryable sentinel.
func storeErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s: %v", schedule.ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// =============================================================================
// AVAILABILITY RECORDS (schedule.AvailabilityStore)
// =============================================================================

// slotJSON is the stored shape of one daily slot. Start/end are kept as
// canonical "HH:MM" strings, null when the slot is off or all-day.
type slotJSON struct {
	Day       string  `json:"day"`
	Available bool    `json:"available"`
	AllDay    bool    `json:"allDay"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
}

func marshalSlots(slots [7]schedule.DailySlot) (string, error) {
	out := make([]slotJSON, 7)
	for i, s := range slots {
		sj := slotJSON{Day: s.Day.String(), Available: s.Available, AllDay: s.AllDay}
		if s.Available && !s.AllDay {
			start, end := s.Start.String(), s.End.String()
			sj.StartTime, sj.EndTime = &start, &end
		}
		out[i] = sj
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalSlots(data string) ([7]schedule.DailySlot, error) {
	var slots [7]schedule.DailySlot
	var in []slotJSON
	if err := json.Unmarshal([]byte(data), &in); err != nil {
		return slots, fmt.Errorf("%w: %v", schedule.ErrMalformedRecord, err)
	}
	if len(in) != 7 {
		return slots, fmt.Errorf("%w: %d slots stored", schedule.ErrMalformedRecord, len(in))
	}
	for i, sj := range in {
		day, err := schedule.ParseWeekday(sj.Day)
		if err != nil {
			return slots, err
		}
		slot := schedule.DailySlot{Day: day, Available: sj.Available, AllDay: sj.AllDay}
		if sj.Available && !sj.AllDay && sj.StartTime != nil && sj.EndTime != nil {
			if slot.Start, err = schedule.ParseClock(*sj.StartTime); err != nil {
				return slots, err
			}
			if slot.End, err = schedule.ParseClockEnd(*sj.EndTime); err != nil {
				return slots, err
			}
		}
		slots[i] = slot
	}
	return slots, nil
}

func (s *Store) CreateAvailability(ctx context.Context, rec schedule.AvailabilityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return createAvailability(ctx, s.db, rec)
}

func createAvailability(ctx context.Context, db dbtx, rec schedule.AvailabilityRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	slots, err := marshalSlots(rec.Slots)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO availability_records
		(id, employee_id, effective_start, effective_end, slots_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.EmployeeID, rec.EffectiveStart.String(), rec.EffectiveEnd.String(),
		slots, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return storeErr("create availability", err)
	}
	return nil
}

func (s *Store) UpdateAvailability(ctx context.Context, rec schedule.AvailabilityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := rec.Validate(); err != nil {
		return err
	}
	slots, err := marshalSlots(rec.Slots)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE availability_records
		SET effective_start = ?, effective_end = ?, slots_json = ?
		WHERE id = ?`,
		rec.EffectiveStart.String(), rec.EffectiveEnd.String(), slots, rec.ID,
	)
	if err != nil {
		return storeErr("update availability", err)
	}
	return requireRow(res)
}

func (s *Store) DeleteAvailability(ctx context.Context, id schedule.RecordID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM availability_records WHERE id = ?`, id)
	if err != nil {
		return storeErr("delete availability", err)
	}
	return requireRow(res)
}

func (s *Store) GetAvailability(ctx context.Context, id schedule.RecordID) (*schedule.AvailabilityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, employee_id, effective_start, effective_end, slots_json, created_at
		FROM availability_records WHERE id = ?`, id)
	return scanAvailability(row)
}

func (s *Store) ListAvailabilityByEmployee(ctx context.Context, employeeID schedule.EmployeeID) ([]schedule.AvailabilityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listAvailability(ctx, s.db, employeeID)
}

func listAvailability(ctx context.Context, db dbtx, employeeID schedule.EmployeeID) ([]schedule.AvailabilityRecord, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, employee_id, effective_start, effective_end, slots_json, created_at
		FROM availability_records
		WHERE employee_id = ?
		ORDER BY effective_start ASC`, employeeID)
	if err != nil {
		return nil, storeErr("list availability", err)
	}
	defer rows.Close()

	var records []schedule.AvailabilityRecord
	for rows.Next() {
		rec, err := scanAvailability(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAvailability(row rowScanner) (*schedule.AvailabilityRecord, error) {
	var rec schedule.AvailabilityRecord
	var start, end, slots, createdAt string
	err := row.Scan(&rec.ID, &rec.EmployeeID, &start, &end, &slots, &createdAt)
	if err == sql.ErrNoRows {
		return nil, schedule.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("scan availability", err)
	}
	if rec.EffectiveStart, err = schedule.ParseDate(start); err != nil {
		return nil, err
	}
	if rec.EffectiveEnd, err = schedule.ParseDate(end); err != nil {
		return nil, err
	}
	if rec.Slots, err = unmarshalSlots(slots); err != nil {
		return nil, err
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &rec, nil
}

// =============================================================================
// SHIFTS (schedule.ShiftStore)
// =============================================================================

func (s *Store) CreateShift(ctx context.Context, shift schedule.ScheduledShift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return createShift(ctx, s.db, shift)
}

func createShift(ctx context.Context, db dbtx, shift schedule.ScheduledShift) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO shifts (id, employee_id, date, start_min, end_min, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		shift.ID, shift.EmployeeID, shift.Date.String(),
		int(shift.Start), int(shift.End), shift.CreatedBy,
		shift.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return storeErr("create shift", err)
	}
	return nil
}

func (s *Store) DeleteShift(ctx context.Context, id schedule.ShiftID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM shifts WHERE id = ?`, id)
	if err != nil {
		return storeErr("delete shift", err)
	}
	return requireRow(res)
}

func (s *Store) FindShiftsByEmployeeAndDate(ctx context.Context, employeeID schedule.EmployeeID, date schedule.Date) ([]schedule.ScheduledShift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findShifts(ctx, s.db, employeeID, date)
}

func findShifts(ctx context.Context, db dbtx, employeeID schedule.EmployeeID, date schedule.Date) ([]schedule.ScheduledShift, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, employee_id, date, start_min, end_min, created_by, created_at
		FROM shifts
		WHERE employee_id = ? AND date = ?
		ORDER BY start_min ASC`, employeeID, date.String())
	if err != nil {
		return nil, storeErr("find shifts", err)
	}
	defer rows.Close()
	return collectShifts(rows)
}

func (s *Store) ListShiftsByOrganization(ctx context.Context, orgID schedule.OrganizationID, weekStart, weekEnd schedule.Date) ([]schedule.ScheduledShift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT sh.id, sh.employee_id, sh.date, sh.start_min, sh.end_min, sh.created_by, sh.created_at
		FROM shifts sh
		JOIN employees e ON e.id = sh.employee_id
		WHERE e.organization_id = ? AND sh.date >= ? AND sh.date <= ?
		ORDER BY sh.date ASC, sh.start_min ASC`,
		orgID, weekStart.String(), weekEnd.String())
	if err != nil {
		return nil, storeErr("list shifts", err)
	}
	defer rows.Close()
	return collectShifts(rows)
}

func collectShifts(rows *sql.Rows) ([]schedule.ScheduledShift, error) {
	var shifts []schedule.ScheduledShift
	for rows.Next() {
		var sh schedule.ScheduledShift
		var date, createdAt string
		var start, end int
		var createdBy sql.NullString
		if err := rows.Scan(&sh.ID, &sh.EmployeeID, &date, &start, &end, &createdBy, &createdAt); err != nil {
			return nil, storeErr("scan shift", err)
		}
		d, err := schedule.ParseDate(date)
		if err != nil {
			return nil, err
		}
		sh.Date = d
		sh.Start = schedule.ClockTime(start)
		sh.End = schedule.ClockTime(end)
		sh.CreatedBy = createdBy.String
		sh.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		shifts = append(shifts, sh)
	}
	return shifts, rows.Err()
}

// =============================================================================
// TRANSACTIONAL STORE (schedule.TxStore)
// =============================================================================

// WithTx executes fn within a database transaction. The write lock is held
// for the duration, serializing racing assignment attempts.
func (s *Store) WithTx(ctx context.Context, fn func(schedule.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("begin tx", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txStore{tx: sqlTx}); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return storeErr("commit tx", err)
	}
	return nil
}

// txStore is the Store view handed to WithTx callbacks. Only the
// operations the validator needs are routed through the transaction;
// the rest are rejected to keep the write path narrow.
type txStore struct {
	tx *sql.Tx
}

var errOutsideTxScope = errors.New("operation not supported inside assignment transaction")

func (ts *txStore) CreateAvailability(ctx context.Context, rec schedule.AvailabilityRecord) error {
	return createAvailability(ctx, ts.tx, rec)
}

func (ts *txStore) UpdateAvailability(context.Context, schedule.AvailabilityRecord) error {
	return errOutsideTxScope
}

func (ts *txStore) DeleteAvailability(context.Context, schedule.RecordID) error {
	return errOutsideTxScope
}

func (ts *txStore) GetAvailability(ctx context.Context, id schedule.RecordID) (*schedule.AvailabilityRecord, error) {
	row := ts.tx.QueryRowContext(ctx, `
		SELECT id, employee_id, effective_start, effective_end, slots_json, created_at
		FROM availability_records WHERE id = ?`, id)
	return scanAvailability(row)
}

func (ts *txStore) ListAvailabilityByEmployee(ctx context.Context, employeeID schedule.EmployeeID) ([]schedule.AvailabilityRecord, error) {
	return listAvailability(ctx, ts.tx, employeeID)
}

func (ts *txStore) CreateShift(ctx context.Context, shift schedule.ScheduledShift) error {
	return createShift(ctx, ts.tx, shift)
}

func (ts *txStore) DeleteShift(ctx context.Context, id schedule.ShiftID) error {
	res, err := ts.tx.ExecContext(ctx, `DELETE FROM shifts WHERE id = ?`, id)
	if err != nil {
		return storeErr("delete shift", err)
	}
	return requireRow(res)
}

func (ts *txStore) FindShiftsByEmployeeAndDate(ctx context.Context, employeeID schedule.EmployeeID, date schedule.Date) ([]schedule.ScheduledShift, error) {
	return findShifts(ctx, ts.tx, employeeID, date)
}

func (ts *txStore) ListShiftsByOrganization(context.Context, schedule.OrganizationID, schedule.Date, schedule.Date) ([]schedule.ScheduledShift, error) {
	return nil, errOutsideTxScope
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return schedule.ErrNotFound
	}
	return nil
}

// =============================================================================
// DIRECTORY STORE (directory.Store)
// =============================================================================

func (s *Store) CreateEmployee(ctx context.Context, e directory.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, email, position, organization_id, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, directory.NormalizeEmail(e.Email), e.Position,
		orgArg(e.OrganizationID), e.Active,
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: %s", directory.ErrDuplicateEmail, e.Email)
		}
		return storeErr("create employee", err)
	}
	return nil
}

func (s *Store) UpdateEmployee(ctx context.Context, e directory.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE employees
		SET name = ?, position = ?, organization_id = ?, active = ?
		WHERE id = ?`,
		e.Name, e.Position, orgArg(e.OrganizationID), e.Active, e.ID,
	)
	if err != nil {
		return storeErr("update employee", err)
	}
	return requireRow(res)
}

func (s *Store) GetEmployee(ctx context.Context, id schedule.EmployeeID) (*directory.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, position, organization_id, active, created_at
		FROM employees WHERE id = ?`, id)
	return scanEmployee(row)
}

func (s *Store) GetEmployeeByEmail(ctx context.Context, email string) (*directory.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, position, organization_id, active, created_at
		FROM employees WHERE email = ?`, directory.NormalizeEmail(email))
	return scanEmployee(row)
}

func (s *Store) ListEmployees(ctx context.Context, orgID *schedule.OrganizationID) ([]directory.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, name, email, position, organization_id, active, created_at
		FROM employees WHERE active ORDER BY name ASC`
	args := []any{}
	if orgID != nil {
		query = `
		SELECT id, name, email, position, organization_id, active, created_at
		FROM employees WHERE active AND organization_id = ? ORDER BY name ASC`
		args = append(args, *orgID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list employees", err)
	}
	defer rows.Close()

	var employees []directory.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *emp)
	}
	return employees, rows.Err()
}

func scanEmployee(row rowScanner) (*directory.Employee, error) {
	var e directory.Employee
	var orgID sql.NullString
	var createdAt string
	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Position, &orgID, &e.Active, &createdAt)
	if err == sql.ErrNoRows {
		return nil, schedule.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("scan employee", err)
	}
	if orgID.Valid {
		id := schedule.OrganizationID(orgID.String)
		e.OrganizationID = &id
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &e, nil
}

func (s *Store) CreateOrganization(ctx context.Context, o directory.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO organizations (id, name, location, created_at)
		VALUES (?, ?, ?, ?)`,
		o.ID, o.Name, o.Location, o.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return storeErr("create organization", err)
	}
	return nil
}

func (s *Store) UpdateOrganization(ctx context.Context, o directory.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE organizations SET name = ?, location = ? WHERE id = ?`,
		o.Name, o.Location, o.ID,
	)
	if err != nil {
		return storeErr("update organization", err)
	}
	return requireRow(res)
}

func (s *Store) GetOrganization(ctx context.Context, id schedule.OrganizationID) (*directory.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var o directory.Organization
	var location sql.NullString
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, location, created_at FROM organizations WHERE id = ?`, id,
	).Scan(&o.ID, &o.Name, &location, &createdAt)
	if err == sql.ErrNoRows {
		return nil, schedule.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("get organization", err)
	}
	o.Location = location.String
	o.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &o, nil
}

func (s *Store) ListOrganizations(ctx context.Context) ([]directory.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, location, created_at FROM organizations ORDER BY name ASC`)
	if err != nil {
		return nil, storeErr("list organizations", err)
	}
	defer rows.Close()

	var orgs []directory.Organization
	for rows.Next() {
		var o directory.Organization
		var location sql.NullString
		var createdAt string
		if err := rows.Scan(&o.ID, &o.Name, &location, &createdAt); err != nil {
			return nil, storeErr("scan organization", err)
		}
		o.Location = location.String
		o.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

func (s *Store) CreatePendingRequest(ctx context.Context, p directory.PendingRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pending_requests (id, name, email, position, organization_id, requested_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, directory.NormalizeEmail(p.Email), p.Position,
		orgArg(p.OrganizationID), p.RequestedBy,
		p.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return storeErr("create pending request", err)
	}
	return nil
}

func (s *Store) GetPendingRequest(ctx context.Context, id string) (*directory.PendingRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, position, organization_id, requested_by, created_at
		FROM pending_requests WHERE id = ?`, id)
	return scanPendingRequest(row)
}

func (s *Store) ListPendingRequests(ctx context.Context) ([]directory.PendingRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, position, organization_id, requested_by, created_at
		FROM pending_requests ORDER BY created_at ASC`)
	if err != nil {
		return nil, storeErr("list pending requests", err)
	}
	defer rows.Close()

	var pending []directory.PendingRequest
	for rows.Next() {
		p, err := scanPendingRequest(rows)
		if err != nil {
			return nil, err
		}
		pending = append(pending, *p)
	}
	return pending, rows.Err()
}

func (s *Store) DeletePendingRequest(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM pending_requests WHERE id = ?`, id)
	if err != nil {
		return storeErr("delete pending request", err)
	}
	return requireRow(res)
}

func scanPendingRequest(row rowScanner) (*directory.PendingRequest, error) {
	var p directory.PendingRequest
	var orgID, requestedBy sql.NullString
	var createdAt string
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Position, &orgID, &requestedBy, &createdAt)
	if err == sql.ErrNoRows {
		return nil, schedule.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("scan pending request", err)
	}
	if orgID.Valid {
		id := schedule.OrganizationID(orgID.String)
		p.OrganizationID = &id
	}
	p.RequestedBy = requestedBy.String
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &p, nil
}

func orgArg(id *schedule.OrganizationID) any {
	if id == nil {
		return nil
	}
	return string(*id)
}
