package directory

import (
	"context"

	"github.com/warp/shift-engine/schedule"
)

// Store persists directory records. Implemented by store/sqlite alongside
// the scheduling stores. Email lookups take the normalized form.
type Store interface {
	CreateEmployee(ctx context.Context, e Employee) error
	UpdateEmployee(ctx context.Context, e Employee) error
	GetEmployee(ctx context.Context, id schedule.EmployeeID) (*Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (*Employee, error)
	ListEmployees(ctx context.Context, orgID *schedule.OrganizationID) ([]Employee, error)

	CreateOrganization(ctx context.Context, o Organization) error
	UpdateOrganization(ctx context.Context, o Organization) error
	GetOrganization(ctx context.Context, id schedule.OrganizationID) (*Organization, error)
	ListOrganizations(ctx context.Context) ([]Organization, error)

	CreatePendingRequest(ctx context.Context, p PendingRequest) error
	GetPendingRequest(ctx context.Context, id string) (*PendingRequest, error)
	ListPendingRequests(ctx context.Context) ([]PendingRequest, error)
	DeletePendingRequest(ctx context.Context, id string) error
}
