/*
sqlite_test.go - Persistence tests against an in-memory database

Covers:
- Availability record round-trip, including all-day and end-of-day slots
- Shift queries per employee/date and per organization week
- Transactional assignment path (WithTx)
- Directory constraints (unique email, missing rows)
*/
package sqlite

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/warp/shift-engine/directory"
	"github.com/warp/shift-engine/schedule"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustDate(t *testing.T, s string) schedule.Date {
	t.Helper()
	d, err := schedule.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

// seedEmployee satisfies the foreign keys on availability and shift rows.
func seedEmployee(t *testing.T, s *Store, id schedule.EmployeeID, orgID *schedule.OrganizationID) {
	t.Helper()
	err := s.CreateEmployee(context.Background(), directory.Employee{
		ID:             id,
		Name:           "Employee " + string(id),
		Email:          string(id) + "@example.com",
		Position:       "Associate",
		OrganizationID: orgID,
		Active:         true,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed employee %s: %v", id, err)
	}
}

func seedOrganization(t *testing.T, s *Store, id schedule.OrganizationID) {
	t.Helper()
	err := s.CreateOrganization(context.Background(), directory.Organization{
		ID: id, Name: "Org " + string(id), CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed organization %s: %v", id, err)
	}
}

func weekSlots(t *testing.T) [7]schedule.DailySlot {
	t.Helper()
	var slots [7]schedule.DailySlot
	for d := schedule.Monday; d <= schedule.Sunday; d++ {
		slots[d] = schedule.DailySlot{Day: d}
	}
	// One timed slot, one all-day slot, one ending at 24:00.
	slots[schedule.Monday] = schedule.DailySlot{Day: schedule.Monday, Available: true, Start: 9 * 60, End: 17 * 60}
	slots[schedule.Saturday] = schedule.DailySlot{Day: schedule.Saturday, Available: true, AllDay: true}
	slots[schedule.Friday] = schedule.DailySlot{Day: schedule.Friday, Available: true, Start: 23 * 60, End: schedule.EndOfDay}
	return slots
}

// =============================================================================
// AVAILABILITY RECORDS
// =============================================================================

func TestAvailability_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedEmployee(t, store, "emp-1", nil)

	rec := schedule.AvailabilityRecord{
		ID:             "rec-1",
		EmployeeID:     "emp-1",
		EffectiveStart: mustDate(t, "2024-06-03"),
		EffectiveEnd:   mustDate(t, "2024-06-10"),
		Slots:          weekSlots(t),
	}
	if err := store.CreateAvailability(ctx, rec); err != nil {
		t.Fatalf("CreateAvailability: %v", err)
	}

	got, err := store.GetAvailability(ctx, "rec-1")
	if err != nil {
		t.Fatalf("GetAvailability: %v", err)
	}
	if !got.EffectiveStart.Equal(rec.EffectiveStart) || !got.EffectiveEnd.Equal(rec.EffectiveEnd) {
		t.Errorf("effective range = %s..%s", got.EffectiveStart, got.EffectiveEnd)
	}
	// The end-of-day slot survives storage as minutes, not a wrapped
	// midnight.
	if got.Slots[schedule.Friday].End != schedule.EndOfDay {
		t.Errorf("Friday end = %v, want EndOfDay", got.Slots[schedule.Friday].End)
	}
	if !got.Slots[schedule.Saturday].AllDay {
		t.Error("Saturday all-day flag lost")
	}
}

func TestAvailability_RejectsMalformed(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedEmployee(t, store, "emp-1", nil)

	rec := schedule.AvailabilityRecord{
		ID:             "rec-bad",
		EmployeeID:     "emp-1",
		EffectiveStart: mustDate(t, "2024-06-10"),
		EffectiveEnd:   mustDate(t, "2024-06-03"), // inverted
		Slots:          weekSlots(t),
	}
	if err := store.CreateAvailability(ctx, rec); !errors.Is(err, schedule.ErrMalformedRecord) {
		t.Fatalf("got %v, want ErrMalformedRecord", err)
	}
}

func TestAvailability_UpdateAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedEmployee(t, store, "emp-1", nil)

	rec := schedule.AvailabilityRecord{
		ID:             "rec-1",
		EmployeeID:     "emp-1",
		EffectiveStart: mustDate(t, "2024-06-03"),
		EffectiveEnd:   mustDate(t, "2024-06-10"),
		Slots:          weekSlots(t),
	}
	if err := store.CreateAvailability(ctx, rec); err != nil {
		t.Fatalf("CreateAvailability: %v", err)
	}

	rec.EffectiveEnd = mustDate(t, "2024-07-01")
	if err := store.UpdateAvailability(ctx, rec); err != nil {
		t.Fatalf("UpdateAvailability: %v", err)
	}
	got, err := store.GetAvailability(ctx, "rec-1")
	if err != nil {
		t.Fatalf("GetAvailability: %v", err)
	}
	if !got.EffectiveEnd.Equal(rec.EffectiveEnd) {
		t.Errorf("EffectiveEnd = %s after update", got.EffectiveEnd)
	}

	if err := store.DeleteAvailability(ctx, "rec-1"); err != nil {
		t.Fatalf("DeleteAvailability: %v", err)
	}
	if _, err := store.GetAvailability(ctx, "rec-1"); !schedule.IsNotFound(err) {
		t.Fatalf("after delete: got %v, want not found", err)
	}
	if err := store.DeleteAvailability(ctx, "rec-1"); !schedule.IsNotFound(err) {
		t.Fatalf("double delete: got %v, want not found", err)
	}
}

// =============================================================================
// SHIFTS
// =============================================================================

func TestShifts_FindByEmployeeAndDate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedEmployee(t, store, "emp-1", nil)
	seedEmployee(t, store, "emp-2", nil)

	day := mustDate(t, "2024-06-05")
	shifts := []schedule.ScheduledShift{
		{ID: "s1", EmployeeID: "emp-1", Date: day, Start: 14 * 60, End: 18 * 60},
		{ID: "s2", EmployeeID: "emp-1", Date: day, Start: 9 * 60, End: 12 * 60},
		{ID: "s3", EmployeeID: "emp-1", Date: day.AddDays(1), Start: 9 * 60, End: 12 * 60},
		{ID: "s4", EmployeeID: "emp-2", Date: day, Start: 9 * 60, End: 12 * 60},
	}
	for _, sh := range shifts {
		sh.CreatedAt = time.Now().UTC()
		if err := store.CreateShift(ctx, sh); err != nil {
			t.Fatalf("CreateShift %s: %v", sh.ID, err)
		}
	}

	got, err := store.FindShiftsByEmployeeAndDate(ctx, "emp-1", day)
	if err != nil {
		t.Fatalf("FindShiftsByEmployeeAndDate: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d shifts, want 2", len(got))
	}
	// Ordered by start time.
	if got[0].ID != "s2" || got[1].ID != "s1" {
		t.Errorf("order = %s, %s", got[0].ID, got[1].ID)
	}
}

func TestShifts_ListByOrganizationWeek(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	orgA := schedule.OrganizationID("org-a")
	orgB := schedule.OrganizationID("org-b")
	seedOrganization(t, store, orgA)
	seedOrganization(t, store, orgB)
	seedEmployee(t, store, "emp-a", &orgA)
	seedEmployee(t, store, "emp-b", &orgB)

	weekStart := mustDate(t, "2024-06-03")
	weekEnd := mustDate(t, "2024-06-09")

	add := func(id schedule.ShiftID, emp schedule.EmployeeID, d schedule.Date) {
		t.Helper()
		err := store.CreateShift(ctx, schedule.ScheduledShift{
			ID: id, EmployeeID: emp, Date: d, Start: 9 * 60, End: 12 * 60,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("CreateShift %s: %v", id, err)
		}
	}
	add("in-week", "emp-a", weekStart.AddDays(2))
	add("last-day", "emp-a", weekEnd)
	add("next-week", "emp-a", weekEnd.AddDays(1))
	add("other-org", "emp-b", weekStart.AddDays(2))

	got, err := store.ListShiftsByOrganization(ctx, orgA, weekStart, weekEnd)
	if err != nil {
		t.Fatalf("ListShiftsByOrganization: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d shifts, want 2: %+v", len(got), got)
	}
	for _, sh := range got {
		if sh.ID == "next-week" || sh.ID == "other-org" {
			t.Errorf("shift %s should be filtered out", sh.ID)
		}
	}
}

// =============================================================================
// TRANSACTIONAL ASSIGNMENT PATH
// =============================================================================

func TestWithTx_RollsBackOnRejection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedEmployee(t, store, "emp-1", nil)

	sentinel := errors.New("reject after write")
	err := store.WithTx(ctx, func(s schedule.Store) error {
		if err := s.CreateShift(ctx, schedule.ScheduledShift{
			ID: "s1", EmployeeID: "emp-1", Date: mustDate(t, "2024-06-05"),
			Start: 9 * 60, End: 12 * 60, CreatedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("WithTx: %v", err)
	}

	// The insert must not be visible.
	got, err := store.FindShiftsByEmployeeAndDate(ctx, "emp-1", mustDate(t, "2024-06-05"))
	if err != nil {
		t.Fatalf("FindShiftsByEmployeeAndDate: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("rolled-back shift visible: %+v", got)
	}
}

func TestValidator_AgainstSQLite(t *testing.T) {
	// End-to-end through the real transaction path.
	store := newTestStore(t)
	ctx := context.Background()
	seedEmployee(t, store, "emp-1", nil)

	slots := weekSlots(t)
	if err := store.CreateAvailability(ctx, schedule.AvailabilityRecord{
		ID:             "rec-1",
		EmployeeID:     "emp-1",
		EffectiveStart: mustDate(t, "2024-06-03"),
		EffectiveEnd:   mustDate(t, "2024-06-10"),
		Slots:          slots,
	}); err != nil {
		t.Fatalf("CreateAvailability: %v", err)
	}

	v := schedule.NewValidator(store)
	a, err := v.AssignShift(ctx, schedule.Proposal{
		EmployeeID: "emp-1",
		Date:       mustDate(t, "2024-06-03"), // Monday 09:00-17:00
		Start:      9 * 60,
		End:        12 * 60,
		ProposedBy: "mgr-1",
	})
	if err != nil {
		t.Fatalf("AssignShift: %v", err)
	}

	// Overlap rejected, committed shift still present.
	_, err = v.AssignShift(ctx, schedule.Proposal{
		EmployeeID: "emp-1",
		Date:       mustDate(t, "2024-06-03"),
		Start:      11 * 60,
		End:        13 * 60,
	})
	if !errors.Is(err, schedule.ErrDoubleBooked) {
		t.Fatalf("got %v, want ErrDoubleBooked", err)
	}

	got, err := store.FindShiftsByEmployeeAndDate(ctx, "emp-1", mustDate(t, "2024-06-03"))
	if err != nil {
		t.Fatalf("FindShiftsByEmployeeAndDate: %v", err)
	}
	if len(got) != 1 || got[0].ID != a.Shift.ID {
		t.Fatalf("shifts = %+v", got)
	}
}

func TestStore_ConcurrentReadsShareMemoryDatabase(t *testing.T) {
	// Concurrent reads must never land on a second pooled connection:
	// for ":memory:" every connection is a distinct empty database, and
	// a read on a fresh one fails with "no such table".
	store := newTestStore(t)
	ctx := context.Background()

	orgID := schedule.OrganizationID("org-a")
	seedOrganization(t, store, orgID)
	seedEmployee(t, store, "emp-1", &orgID)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for n := 0; n < 50; n++ {
				var err error
				if i == 0 {
					_, err = store.ListOrganizations(ctx)
				} else {
					_, err = store.ListEmployees(ctx, &orgID)
				}
				if err != nil {
					errs <- err
					return
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent read: %v", err)
	}
}

func TestStore_ContextDeadlineIsRetryable(t *testing.T) {
	store := newTestStore(t)
	seedEmployee(t, store, "emp-1", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.ListAvailabilityByEmployee(ctx, "emp-1")
	if !schedule.IsRetryable(err) {
		t.Fatalf("got %v, want retryable store error", err)
	}
}

// =============================================================================
// DIRECTORY
// =============================================================================

func TestEmployees_UniqueEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedEmployee(t, store, "emp-1", nil)

	err := store.CreateEmployee(ctx, directory.Employee{
		ID: "emp-2", Name: "Dup", Email: "EMP-1@example.com",
		Position: "Associate", Active: true, CreatedAt: time.Now().UTC(),
	})
	if !errors.Is(err, directory.ErrDuplicateEmail) {
		t.Fatalf("got %v, want ErrDuplicateEmail", err)
	}
}

func TestEmployees_MissingRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.GetEmployee(ctx, "nope"); !schedule.IsNotFound(err) {
		t.Fatalf("GetEmployee: got %v, want not found", err)
	}
	if err := store.UpdateEmployee(ctx, directory.Employee{ID: "nope"}); !schedule.IsNotFound(err) {
		t.Fatalf("UpdateEmployee: got %v, want not found", err)
	}
	if _, err := store.GetPendingRequest(ctx, "nope"); !schedule.IsNotFound(err) {
		t.Fatalf("GetPendingRequest: got %v, want not found", err)
	}
}
