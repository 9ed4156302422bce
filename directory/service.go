/*
service.go - Directory operations with role-based staging

PURPOSE:
  Implements the hire flow and organization/employee management. The one
  piece of real policy here: WHO creates an employee decides whether the
  record is created directly or staged for approval.

HIRE FLOW:
  - Admin (or any non-Manager actor): Employee created immediately,
    invite sent best-effort
  - Manager: a PendingRequest is staged; an Admin later approves
    (promotion to Employee + invite) or rejects (request deleted)

INVITES:
  Sent after the durable write succeeds. Failure is logged and swallowed;
  the employee exists either way.
*/
package directory

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/warp/shift-engine/schedule"
)

// signupPath is where invited employees land to finish account setup.
const signupPath = "/employee-signup"

type Service struct {
	store   Store
	invites InviteSender
	now     func() time.Time
}

func NewService(store Store, invites InviteSender) *Service {
	return &Service{store: store, invites: invites, now: time.Now}
}

// NewEmployee carries the creation fields shared by direct creation and
// the pending-request path.
type NewEmployee struct {
	Name           string
	Email          string
	Position       string
	OrganizationID *schedule.OrganizationID
}

// CreateResult reports which path a creation took: exactly one of
// Employee or Pending is set.
type CreateResult struct {
	Employee *Employee
	Pending  *PendingRequest
}

// CreateEmployee creates an employee, or stages a pending request when the
// actor is a Manager.
func (s *Service) CreateEmployee(ctx context.Context, actor Actor, input NewEmployee) (*CreateResult, error) {
	email := NormalizeEmail(input.Email)
	if email == "" || input.Name == "" {
		return nil, fmt.Errorf("%w: name and email are required", schedule.ErrMalformedRecord)
	}
	if err := s.checkEmailFree(ctx, email); err != nil {
		return nil, err
	}

	if actor.IsManager() {
		pending := PendingRequest{
			ID:             uuid.NewString(),
			Name:           input.Name,
			Email:          email,
			Position:       input.Position,
			OrganizationID: input.OrganizationID,
			RequestedBy:    actor.SubjectID,
			CreatedAt:      s.now().UTC(),
		}
		if err := s.store.CreatePendingRequest(ctx, pending); err != nil {
			return nil, err
		}
		return &CreateResult{Pending: &pending}, nil
	}

	emp, err := s.createEmployee(ctx, input.Name, email, input.Position, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	return &CreateResult{Employee: emp}, nil
}

// ApprovePendingRequest promotes a staged hire to an Employee. Admin only.
func (s *Service) ApprovePendingRequest(ctx context.Context, actor Actor, id string) (*Employee, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: approval requires %s", ErrForbidden, PositionAdmin)
	}
	pending, err := s.store.GetPendingRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	// An earlier approval may have created the employee and then failed
	// before consuming the request. Re-approval finishes the job instead
	// of dying on the duplicate email.
	if existing, err := s.store.GetEmployeeByEmail(ctx, pending.Email); err == nil {
		if err := s.store.DeletePendingRequest(ctx, id); err != nil && !schedule.IsNotFound(err) {
			return nil, err
		}
		return existing, nil
	} else if !schedule.IsNotFound(err) {
		return nil, err
	}

	emp, err := s.createEmployee(ctx, pending.Name, pending.Email, pending.Position, pending.OrganizationID)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeletePendingRequest(ctx, id); err != nil && !schedule.IsNotFound(err) {
		return nil, err
	}
	return emp, nil
}

// RejectPendingRequest deletes a staged hire outright. Admin only.
func (s *Service) RejectPendingRequest(ctx context.Context, actor Actor, id string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: rejection requires %s", ErrForbidden, PositionAdmin)
	}
	if _, err := s.store.GetPendingRequest(ctx, id); err != nil {
		return err
	}
	return s.store.DeletePendingRequest(ctx, id)
}

// DeactivateEmployee soft-deletes: the record stays for reactivation and
// referential integrity, but the employee is excluded from active listings.
func (s *Service) DeactivateEmployee(ctx context.Context, id schedule.EmployeeID) error {
	emp, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return err
	}
	emp.Active = false
	return s.store.UpdateEmployee(ctx, *emp)
}

// ReactivateByEmail restores a previously deactivated employee.
func (s *Service) ReactivateByEmail(ctx context.Context, email string) (*Employee, error) {
	emp, err := s.store.GetEmployeeByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if emp.Active {
		return emp, nil
	}
	emp.Active = true
	if err := s.store.UpdateEmployee(ctx, *emp); err != nil {
		return nil, err
	}
	return emp, nil
}

// UpdateEmployee replaces mutable fields (name, position, organization).
func (s *Service) UpdateEmployee(ctx context.Context, e Employee) (*Employee, error) {
	current, err := s.store.GetEmployee(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	current.Name = e.Name
	current.Position = e.Position
	current.OrganizationID = e.OrganizationID
	if err := s.store.UpdateEmployee(ctx, *current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *Service) GetEmployee(ctx context.Context, id schedule.EmployeeID) (*Employee, error) {
	return s.store.GetEmployee(ctx, id)
}

func (s *Service) ListEmployees(ctx context.Context, orgID *schedule.OrganizationID) ([]Employee, error) {
	return s.store.ListEmployees(ctx, orgID)
}

func (s *Service) ListPendingRequests(ctx context.Context) ([]PendingRequest, error) {
	return s.store.ListPendingRequests(ctx)
}

// CreateOrganization creates an organization.
func (s *Service) CreateOrganization(ctx context.Context, name, location string) (*Organization, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: organization name is required", schedule.ErrMalformedRecord)
	}
	org := Organization{
		ID:        schedule.OrganizationID(uuid.NewString()),
		Name:      name,
		Location:  location,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.CreateOrganization(ctx, org); err != nil {
		return nil, err
	}
	return &org, nil
}

func (s *Service) UpdateOrganization(ctx context.Context, o Organization) (*Organization, error) {
	current, err := s.store.GetOrganization(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	current.Name = o.Name
	current.Location = o.Location
	if err := s.store.UpdateOrganization(ctx, *current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *Service) GetOrganization(ctx context.Context, id schedule.OrganizationID) (*Organization, error) {
	return s.store.GetOrganization(ctx, id)
}

func (s *Service) ListOrganizations(ctx context.Context) ([]Organization, error) {
	return s.store.ListOrganizations(ctx)
}

// SendInvitation delivers a sign-up invite on demand (admin resend path).
func (s *Service) SendInvitation(ctx context.Context, email, path string) error {
	return s.invites.Send(ctx, NormalizeEmail(email), path)
}

func (s *Service) createEmployee(ctx context.Context, name, email, position string, orgID *schedule.OrganizationID) (*Employee, error) {
	emp := Employee{
		ID:             schedule.EmployeeID(uuid.NewString()),
		Name:           name,
		Email:          email,
		Position:       position,
		OrganizationID: orgID,
		Active:         true,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.store.CreateEmployee(ctx, emp); err != nil {
		return nil, err
	}

	// Best-effort side channel: the employee exists whether or not the
	// invite goes out.
	if err := s.invites.Send(ctx, email, signupPath); err != nil {
		log.Printf("invite to %s failed: %v", email, err)
	}
	return &emp, nil
}

func (s *Service) checkEmailFree(ctx context.Context, email string) error {
	existing, err := s.store.GetEmployeeByEmail(ctx, email)
	if err != nil {
		if schedule.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
	}
	return nil
}
