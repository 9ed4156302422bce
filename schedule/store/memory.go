// Package store provides schedule store implementations.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/warp/shift-engine/schedule"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	records map[schedule.RecordID]schedule.AvailabilityRecord
	shifts  map[schedule.ShiftID]schedule.ScheduledShift
	// employee -> organization, for week queries
	orgs map[schedule.EmployeeID]schedule.OrganizationID
}

func NewMemory() *Memory {
	return &Memory{
		records: make(map[schedule.RecordID]schedule.AvailabilityRecord),
		shifts:  make(map[schedule.ShiftID]schedule.ScheduledShift),
		orgs:    make(map[schedule.EmployeeID]schedule.OrganizationID),
	}
}

// SetEmployeeOrganization registers the employee -> organization mapping
// used by ListShiftsByOrganization.
func (m *Memory) SetEmployeeOrganization(employeeID schedule.EmployeeID, orgID schedule.OrganizationID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orgs[employeeID] = orgID
}

// -----------------------------------------------------------------------------
// AvailabilityStore
// -----------------------------------------------------------------------------

func (m *Memory) CreateAvailability(_ context.Context, rec schedule.AvailabilityRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createAvailabilityLocked(rec)
}

// Duplicate ids fail like the database primary key would.
func (m *Memory) createAvailabilityLocked(rec schedule.AvailabilityRecord) error {
	if _, ok := m.records[rec.ID]; ok {
		return fmt.Errorf("create availability: record %s already exists", rec.ID)
	}
	m.records[rec.ID] = rec
	return nil
}

func (m *Memory) UpdateAvailability(_ context.Context, rec schedule.AvailabilityRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[rec.ID]; !ok {
		return schedule.ErrNotFound
	}
	m.records[rec.ID] = rec
	return nil
}

func (m *Memory) DeleteAvailability(_ context.Context, id schedule.RecordID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return schedule.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *Memory) GetAvailability(_ context.Context, id schedule.RecordID) (*schedule.AvailabilityRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, schedule.ErrNotFound
	}
	return &rec, nil
}

func (m *Memory) ListAvailabilityByEmployee(_ context.Context, employeeID schedule.EmployeeID) ([]schedule.AvailabilityRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listAvailabilityLocked(employeeID), nil
}

func (m *Memory) listAvailabilityLocked(employeeID schedule.EmployeeID) []schedule.AvailabilityRecord {
	var result []schedule.AvailabilityRecord
	for _, rec := range m.records {
		if rec.EmployeeID == employeeID {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].EffectiveStart.Before(result[j].EffectiveStart)
	})
	return result
}

// -----------------------------------------------------------------------------
// ShiftStore
// -----------------------------------------------------------------------------

func (m *Memory) CreateShift(_ context.Context, shift schedule.ScheduledShift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createShiftLocked(shift)
}

func (m *Memory) createShiftLocked(shift schedule.ScheduledShift) error {
	if _, ok := m.shifts[shift.ID]; ok {
		return fmt.Errorf("create shift: shift %s already exists", shift.ID)
	}
	m.shifts[shift.ID] = shift
	return nil
}

func (m *Memory) DeleteShift(_ context.Context, id schedule.ShiftID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.shifts[id]; !ok {
		return schedule.ErrNotFound
	}
	delete(m.shifts, id)
	return nil
}

func (m *Memory) FindShiftsByEmployeeAndDate(_ context.Context, employeeID schedule.EmployeeID, date schedule.Date) ([]schedule.ScheduledShift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.findShiftsLocked(employeeID, date), nil
}

func (m *Memory) findShiftsLocked(employeeID schedule.EmployeeID, date schedule.Date) []schedule.ScheduledShift {
	var result []schedule.ScheduledShift
	for _, s := range m.shifts {
		if s.EmployeeID == employeeID && s.Date.Equal(date) {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Start < result[j].Start })
	return result
}

func (m *Memory) ListShiftsByOrganization(_ context.Context, orgID schedule.OrganizationID, weekStart, weekEnd schedule.Date) ([]schedule.ScheduledShift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []schedule.ScheduledShift
	for _, s := range m.shifts {
		if m.orgs[s.EmployeeID] != orgID {
			continue
		}
		if s.Date.Before(weekStart) || s.Date.After(weekEnd) {
			continue
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].Start < result[j].Start
	})
	return result, nil
}

// =============================================================================
// TRANSACTIONAL MEMORY STORE
// =============================================================================

// TxMemory wraps Memory with transaction support. The whole store locks for
// the duration of WithTx, which serializes racing assignments the same way
// a database transaction would.
type TxMemory struct {
	*Memory
}

func NewTxMemory() *TxMemory {
	return &TxMemory{Memory: NewMemory()}
}

func (tm *TxMemory) WithTx(_ context.Context, fn func(schedule.Store) error) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	snapshot := tm.snapshot()
	if err := fn(&txMemoryView{parent: tm.Memory}); err != nil {
		tm.restore(snapshot)
		return err
	}
	return nil
}

func (tm *TxMemory) snapshot() memorySnapshot {
	recs := make(map[schedule.RecordID]schedule.AvailabilityRecord, len(tm.records))
	for k, v := range tm.records {
		recs[k] = v
	}
	shifts := make(map[schedule.ShiftID]schedule.ScheduledShift, len(tm.shifts))
	for k, v := range tm.shifts {
		shifts[k] = v
	}
	return memorySnapshot{records: recs, shifts: shifts}
}

func (tm *TxMemory) restore(s memorySnapshot) {
	tm.records = s.records
	tm.shifts = s.shifts
}

type memorySnapshot struct {
	records map[schedule.RecordID]schedule.AvailabilityRecord
	shifts  map[schedule.ShiftID]schedule.ScheduledShift
}

// txMemoryView accesses parent state directly; the parent mutex is already
// held for the whole transaction.
type txMemoryView struct {
	parent *Memory
}

func (tv *txMemoryView) CreateAvailability(_ context.Context, rec schedule.AvailabilityRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	return tv.parent.createAvailabilityLocked(rec)
}

func (tv *txMemoryView) UpdateAvailability(_ context.Context, rec schedule.AvailabilityRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if _, ok := tv.parent.records[rec.ID]; !ok {
		return schedule.ErrNotFound
	}
	tv.parent.records[rec.ID] = rec
	return nil
}

func (tv *txMemoryView) DeleteAvailability(_ context.Context, id schedule.RecordID) error {
	if _, ok := tv.parent.records[id]; !ok {
		return schedule.ErrNotFound
	}
	delete(tv.parent.records, id)
	return nil
}

func (tv *txMemoryView) GetAvailability(_ context.Context, id schedule.RecordID) (*schedule.AvailabilityRecord, error) {
	rec, ok := tv.parent.records[id]
	if !ok {
		return nil, schedule.ErrNotFound
	}
	return &rec, nil
}

func (tv *txMemoryView) ListAvailabilityByEmployee(_ context.Context, employeeID schedule.EmployeeID) ([]schedule.AvailabilityRecord, error) {
	return tv.parent.listAvailabilityLocked(employeeID), nil
}

func (tv *txMemoryView) CreateShift(_ context.Context, shift schedule.ScheduledShift) error {
	return tv.parent.createShiftLocked(shift)
}

func (tv *txMemoryView) DeleteShift(_ context.Context, id schedule.ShiftID) error {
	if _, ok := tv.parent.shifts[id]; !ok {
		return schedule.ErrNotFound
	}
	delete(tv.parent.shifts, id)
	return nil
}

func (tv *txMemoryView) FindShiftsByEmployeeAndDate(_ context.Context, employeeID schedule.EmployeeID, date schedule.Date) ([]schedule.ScheduledShift, error) {
	return tv.parent.findShiftsLocked(employeeID, date), nil
}

func (tv *txMemoryView) ListShiftsByOrganization(_ context.Context, orgID schedule.OrganizationID, weekStart, weekEnd schedule.Date) ([]schedule.ScheduledShift, error) {
	var result []schedule.ScheduledShift
	for _, s := range tv.parent.shifts {
		if tv.parent.orgs[s.EmployeeID] == orgID && !s.Date.Before(weekStart) && !s.Date.After(weekEnd) {
			result = append(result, s)
		}
	}
	return result, nil
}
