package directory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/warp/shift-engine/directory"
	"github.com/warp/shift-engine/schedule"
	"github.com/warp/shift-engine/store/sqlite"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// recordingSender captures invites instead of delivering them.
type recordingSender struct {
	mu    sync.Mutex
	sent  []string
	fail  error
	paths []string
}

func (r *recordingSender) Send(_ context.Context, email, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.sent = append(r.sent, email)
	r.paths = append(r.paths, path)
	return nil
}

func newServiceFixture(t *testing.T) (*directory.Service, *recordingSender) {
	t.Helper()
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	sender := &recordingSender{}
	return directory.NewService(store, sender), sender
}

var (
	admin   = directory.Actor{SubjectID: "adm-1", Role: directory.PositionAdmin}
	manager = directory.Actor{SubjectID: "mgr-1", Role: directory.PositionManager}
)

// =============================================================================
// HIRE FLOW
// =============================================================================

func TestCreateEmployee_AdminCreatesDirectly(t *testing.T) {
	// GIVEN: an admin actor
	// WHEN: creating an employee
	// THEN: the record exists immediately and an invite is sent
	svc, sender := newServiceFixture(t)
	ctx := context.Background()

	result, err := svc.CreateEmployee(ctx, admin, directory.NewEmployee{
		Name:     "Alice Smith",
		Email:    "Alice@Example.com",
		Position: "Associate",
	})
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	if result.Employee == nil || result.Pending != nil {
		t.Fatalf("expected direct creation, got %+v", result)
	}
	if result.Employee.Email != "alice@example.com" {
		t.Errorf("email not normalized: %q", result.Employee.Email)
	}
	if !result.Employee.Active {
		t.Error("new employee should be active")
	}
	if len(sender.sent) != 1 || sender.sent[0] != "alice@example.com" {
		t.Errorf("invite not sent: %v", sender.sent)
	}
	if sender.paths[0] != "/employee-signup" {
		t.Errorf("signup path = %q", sender.paths[0])
	}
}

func TestCreateEmployee_ManagerStagesPendingRequest(t *testing.T) {
	// GIVEN: a manager actor
	// WHEN: creating an employee
	// THEN: a pending request is staged, no employee, no invite
	svc, sender := newServiceFixture(t)
	ctx := context.Background()

	result, err := svc.CreateEmployee(ctx, manager, directory.NewEmployee{
		Name:     "Bob Jones",
		Email:    "bob@example.com",
		Position: "Associate",
	})
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	if result.Pending == nil || result.Employee != nil {
		t.Fatalf("expected staged request, got %+v", result)
	}
	if result.Pending.RequestedBy != "mgr-1" {
		t.Errorf("RequestedBy = %q", result.Pending.RequestedBy)
	}
	if len(sender.sent) != 0 {
		t.Errorf("no invite should be sent while staged: %v", sender.sent)
	}
}

func TestApprovePendingRequest(t *testing.T) {
	svc, sender := newServiceFixture(t)
	ctx := context.Background()

	result, err := svc.CreateEmployee(ctx, manager, directory.NewEmployee{
		Name: "Bob Jones", Email: "bob@example.com", Position: "Associate",
	})
	if err != nil {
		t.Fatalf("stage: %v", err)
	}

	// Approval is admin-only.
	if _, err := svc.ApprovePendingRequest(ctx, manager, result.Pending.ID); !errors.Is(err, directory.ErrForbidden) {
		t.Fatalf("manager approval: got %v, want ErrForbidden", err)
	}

	emp, err := svc.ApprovePendingRequest(ctx, admin, result.Pending.ID)
	if err != nil {
		t.Fatalf("ApprovePendingRequest: %v", err)
	}
	if emp.Email != "bob@example.com" {
		t.Errorf("promoted email = %q", emp.Email)
	}
	if len(sender.sent) != 1 {
		t.Errorf("invite should go out on approval: %v", sender.sent)
	}

	// The request is consumed.
	pending, err := svc.ListPendingRequests(ctx)
	if err != nil {
		t.Fatalf("ListPendingRequests: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending requests remain: %+v", pending)
	}
}

func TestApprovePendingRequest_FinishesInterruptedApproval(t *testing.T) {
	// GIVEN: an earlier approval created the employee but failed before
	// consuming the request, leaving both records behind
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	sender := &recordingSender{}
	svc := directory.NewService(store, sender)
	ctx := context.Background()

	staged, err := svc.CreateEmployee(ctx, manager, directory.NewEmployee{
		Name: "Bob Jones", Email: "bob@example.com", Position: "Associate",
	})
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	if err := store.CreateEmployee(ctx, directory.Employee{
		ID: "emp-bob", Name: "Bob Jones", Email: "bob@example.com",
		Position: "Associate", Active: true,
	}); err != nil {
		t.Fatalf("simulate half-finished approval: %v", err)
	}

	// WHEN: the request is approved again
	// THEN: it resolves to the existing employee and is consumed
	emp, err := svc.ApprovePendingRequest(ctx, admin, staged.Pending.ID)
	if err != nil {
		t.Fatalf("re-approval: %v", err)
	}
	if emp.ID != "emp-bob" {
		t.Errorf("employee = %+v", emp)
	}
	pending, err := svc.ListPendingRequests(ctx)
	if err != nil {
		t.Fatalf("ListPendingRequests: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("request not consumed: %+v", pending)
	}
}

func TestRejectPendingRequest(t *testing.T) {
	svc, sender := newServiceFixture(t)
	ctx := context.Background()

	result, err := svc.CreateEmployee(ctx, manager, directory.NewEmployee{
		Name: "Bob Jones", Email: "bob@example.com", Position: "Associate",
	})
	if err != nil {
		t.Fatalf("stage: %v", err)
	}

	if err := svc.RejectPendingRequest(ctx, manager, result.Pending.ID); !errors.Is(err, directory.ErrForbidden) {
		t.Fatalf("manager rejection: got %v, want ErrForbidden", err)
	}
	if err := svc.RejectPendingRequest(ctx, admin, result.Pending.ID); err != nil {
		t.Fatalf("RejectPendingRequest: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Errorf("no invite on rejection: %v", sender.sent)
	}

	// Rejecting again: the request is gone.
	if err := svc.RejectPendingRequest(ctx, admin, result.Pending.ID); !schedule.IsNotFound(err) {
		t.Fatalf("second rejection: got %v, want not found", err)
	}
}

func TestCreateEmployee_DuplicateEmail(t *testing.T) {
	svc, _ := newServiceFixture(t)
	ctx := context.Background()

	if _, err := svc.CreateEmployee(ctx, admin, directory.NewEmployee{
		Name: "Alice", Email: "alice@example.com",
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Same email, different case.
	_, err := svc.CreateEmployee(ctx, admin, directory.NewEmployee{
		Name: "Other Alice", Email: "ALICE@example.com",
	})
	if !errors.Is(err, directory.ErrDuplicateEmail) {
		t.Fatalf("got %v, want ErrDuplicateEmail", err)
	}
}

func TestCreateEmployee_InviteFailureDoesNotRollBack(t *testing.T) {
	svc, sender := newServiceFixture(t)
	sender.fail = errors.New("smtp down")
	ctx := context.Background()

	result, err := svc.CreateEmployee(ctx, admin, directory.NewEmployee{
		Name: "Alice", Email: "alice@example.com",
	})
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	if _, err := svc.GetEmployee(ctx, result.Employee.ID); err != nil {
		t.Fatalf("employee should exist despite invite failure: %v", err)
	}
}

// =============================================================================
// DEACTIVATION / REACTIVATION
// =============================================================================

func TestDeactivateAndReactivate(t *testing.T) {
	svc, _ := newServiceFixture(t)
	ctx := context.Background()

	result, err := svc.CreateEmployee(ctx, admin, directory.NewEmployee{
		Name: "Alice", Email: "alice@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := result.Employee.ID

	if err := svc.DeactivateEmployee(ctx, id); err != nil {
		t.Fatalf("DeactivateEmployee: %v", err)
	}

	// Deactivated employees drop out of active listings.
	active, err := svc.ListEmployees(ctx, nil)
	if err != nil {
		t.Fatalf("ListEmployees: %v", err)
	}
	for _, e := range active {
		if e.ID == id {
			t.Fatal("deactivated employee still listed as active")
		}
	}

	emp, err := svc.ReactivateByEmail(ctx, "Alice@Example.com")
	if err != nil {
		t.Fatalf("ReactivateByEmail: %v", err)
	}
	if !emp.Active {
		t.Error("employee should be active after reactivation")
	}
}

// =============================================================================
// ORGANIZATIONS
// =============================================================================

func TestOrganizationLifecycle(t *testing.T) {
	svc, _ := newServiceFixture(t)
	ctx := context.Background()

	org, err := svc.CreateOrganization(ctx, "Downtown Store", "Springfield")
	if err != nil {
		t.Fatalf("CreateOrganization: %v", err)
	}

	org.Location = "Shelbyville"
	updated, err := svc.UpdateOrganization(ctx, *org)
	if err != nil {
		t.Fatalf("UpdateOrganization: %v", err)
	}
	if updated.Location != "Shelbyville" {
		t.Errorf("Location = %q", updated.Location)
	}

	// Employees scope to their organization.
	if _, err := svc.CreateEmployee(ctx, admin, directory.NewEmployee{
		Name: "Alice", Email: "alice@example.com", OrganizationID: &org.ID,
	}); err != nil {
		t.Fatalf("create employee: %v", err)
	}
	if _, err := svc.CreateEmployee(ctx, admin, directory.NewEmployee{
		Name: "Bob", Email: "bob@example.com",
	}); err != nil {
		t.Fatalf("create employee: %v", err)
	}

	scoped, err := svc.ListEmployees(ctx, &org.ID)
	if err != nil {
		t.Fatalf("ListEmployees: %v", err)
	}
	if len(scoped) != 1 || scoped[0].Name != "Alice" {
		t.Errorf("scoped listing = %+v", scoped)
	}
}
