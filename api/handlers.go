/*
handlers.go - HTTP API handlers for the scheduling system

PURPOSE:
  Exposes the scheduling engine and directory via REST. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Scheduling:
    GET    /api/availability/resolve   Eligible windows for (employee, date)
    POST   /api/shifts                 Propose a shift (validator path)
    GET    /api/shifts                 Week view for an organization
    PUT    /api/shifts/{id}            Replace a shift (re-validated)
    DELETE /api/shifts/{id}            Remove a committed shift

  Availability:
    GET/POST    /api/employees/availabilities
    PUT/DELETE  /api/employees/availabilities/{id}
    GET         /api/employees/availabilities-by-organization

  Directory:
    /api/employees, /api/employees/pending-requests,
    /api/organizations, /api/invitations, /api/user-info

ERROR HANDLING:
  Every rejection carries a stable code (schedule.Kind) in the response
  body. Status mapping:
    400 malformed payloads, invalid ranges
    401 unresolved credential      403 role not permitted
    404 missing referents          409 double booking, duplicate email
    422 no/outside availability    503 store timeout (retryable)

TIMEOUTS:
  Every store-touching operation runs under a bounded context; a
  deadline surfaces as 503 with code "unavailable" instead of hanging
  the caller.
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/warp/shift-engine/directory"
	"github.com/warp/shift-engine/schedule"
	"github.com/warp/shift-engine/store/sqlite"
)

// defaultTimeout bounds every store-touching request.
const defaultTimeout = 5 * time.Second

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     *sqlite.Store
	Directory *directory.Service
	Resolver  *schedule.Resolver
	Validator *schedule.Validator

	timeout time.Duration
}

// NewHandler creates a new handler backed by the given store.
func NewHandler(store *sqlite.Store, dir *directory.Service) *Handler {
	return &Handler{
		Store:     store,
		Directory: dir,
		Resolver:  schedule.NewResolver(store),
		Validator: schedule.NewValidator(store),
		timeout:   defaultTimeout,
	}
}

func (h *Handler) opCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}

// =============================================================================
// AVAILABILITY RESOLUTION
// =============================================================================

// ResolveAvailability returns the eligible windows for (employee, date).
// GET /api/availability/resolve?employeeId=&date=
func (h *Handler) ResolveAvailability(w http.ResponseWriter, r *http.Request) {
	employeeID := schedule.EmployeeID(r.URL.Query().Get("employeeId"))
	if employeeID == "" {
		writeError(w, http.StatusBadRequest, "employeeId is required", nil)
		return
	}
	date, err := schedule.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	ctx, cancel := h.opCtx(r)
	defer cancel()

	if _, err := h.Directory.GetEmployee(ctx, employeeID); err != nil {
		writeDomainError(w, err)
		return
	}
	res, err := h.Resolver.Resolve(ctx, employeeID, date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResolveResponse(res))
}

// =============================================================================
// SHIFTS
// =============================================================================

// CreateShift validates and commits a proposed shift.
// POST /api/shifts
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())

	var req CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	start, err := schedule.ParseClock(req.StartTime)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	// End position: "00:00" means end-of-day here, not next midnight.
	end, err := schedule.ParseClockEnd(req.EndTime)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	ctx, cancel := h.opCtx(r)
	defer cancel()

	if _, err := h.Directory.GetEmployee(ctx, schedule.EmployeeID(req.EmployeeID)); err != nil {
		writeDomainError(w, err)
		return
	}

	assignment, err := h.Validator.AssignShift(ctx, schedule.Proposal{
		EmployeeID: schedule.EmployeeID(req.EmployeeID),
		Date:       date,
		Start:      start,
		End:        end,
		ProposedBy: principal.SubjectID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dto := toShiftDTO(assignment.Shift)
	if assignment.Warning != nil {
		dto.Warning = &WarningDTO{
			Code:    string(assignment.Warning.Kind),
			Message: assignment.Warning.Message,
		}
	}
	writeJSON(w, http.StatusCreated, dto)
}

// ListShifts renders the week view for an organization.
// GET /api/shifts?organizationId=&weekStart=&weekEnd=
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	orgID := schedule.OrganizationID(r.URL.Query().Get("organizationId"))
	if orgID == "" {
		writeError(w, http.StatusBadRequest, "organizationId is required", nil)
		return
	}
	weekStart, err := schedule.ParseDate(r.URL.Query().Get("weekStart"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	weekEnd, err := schedule.ParseDate(r.URL.Query().Get("weekEnd"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	ctx, cancel := h.opCtx(r)
	defer cancel()

	// Shifts and the employee roster are independent reads.
	var (
		shifts    []schedule.ScheduledShift
		employees []directory.Employee
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		shifts, err = h.Store.ListShiftsByOrganization(gctx, orgID, weekStart, weekEnd)
		return err
	})
	g.Go(func() error {
		var err error
		employees, err = h.Directory.ListEmployees(gctx, &orgID)
		return err
	})
	if err := g.Wait(); err != nil {
		writeDomainError(w, err)
		return
	}

	names := make(map[schedule.EmployeeID]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.Name
	}

	view := schedule.BuildWeekView(weekStart, weekEnd, shifts)
	out := WeekViewDTO{
		WeekStart: view.WeekStart.String(),
		WeekEnd:   view.WeekEnd.String(),
		Employees: []EmployeeWeekDTO{},
	}
	for _, ew := range view.Employees {
		row := EmployeeWeekDTO{
			EmployeeID: string(ew.EmployeeID),
			Name:       names[ew.EmployeeID],
			TotalHours: ew.TotalHours.String(),
			Shifts:     []ShiftDTO{},
		}
		for _, s := range ew.Shifts {
			row.Shifts = append(row.Shifts, toShiftDTO(s))
		}
		out.Employees = append(out.Employees, row)
	}
	writeJSON(w, http.StatusOK, out)
}

// UpdateShift replaces a committed shift after re-validating the new
// times through the assignment rules.
// PUT /api/shifts/{id}
func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())

	var req CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	start, err := schedule.ParseClock(req.StartTime)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	end, err := schedule.ParseClockEnd(req.EndTime)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	ctx, cancel := h.opCtx(r)
	defer cancel()

	assignment, err := h.Validator.ReassignShift(ctx, schedule.ShiftID(chi.URLParam(r, "id")), schedule.Proposal{
		EmployeeID: schedule.EmployeeID(req.EmployeeID),
		Date:       date,
		Start:      start,
		End:        end,
		ProposedBy: principal.SubjectID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dto := toShiftDTO(assignment.Shift)
	if assignment.Warning != nil {
		dto.Warning = &WarningDTO{
			Code:    string(assignment.Warning.Kind),
			Message: assignment.Warning.Message,
		}
	}
	writeJSON(w, http.StatusOK, dto)
}

// DeleteShift removes a committed shift.
// DELETE /api/shifts/{id}
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.opCtx(r)
	defer cancel()

	if err := h.Store.DeleteShift(ctx, schedule.ShiftID(chi.URLParam(r, "id"))); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// AVAILABILITY RECORDS
// =============================================================================

// CreateAvailability stores a new availability template.
// POST /api/employees/availabilities
func (h *Handler) CreateAvailability(w http.ResponseWriter, r *http.Request) {
	rec, err := h.decodeAvailability(r, schedule.RecordID(uuid.NewString()))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	ctx, cancel := h.opCtx(r)
	defer cancel()

	if err := h.Store.CreateAvailability(ctx, *rec); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAvailabilityDTO(*rec))
}

// UpdateAvailability replaces a record's date range and slot set.
// PUT /api/employees/availabilities/{id}
func (h *Handler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	rec, err := h.decodeAvailability(r, schedule.RecordID(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	ctx, cancel := h.opCtx(r)
	defer cancel()

	if err := h.Store.UpdateAvailability(ctx, *rec); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAvailabilityDTO(*rec))
}

// DeleteAvailability removes a record.
// DELETE /api/employees/availabilities/{id}
func (h *Handler) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.opCtx(r)
	defer cancel()

	if err := h.Store.DeleteAvailability(ctx, schedule.RecordID(chi.URLParam(r, "id"))); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAvailabilities returns records for one employee (default: the
// caller).
// GET /api/employees/availabilities?employeeId=
func (h *Handler) ListAvailabilities(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())
	employeeID := schedule.EmployeeID(r.URL.Query().Get("employeeId"))
	if employeeID == "" {
		employeeID = schedule.EmployeeID(principal.SubjectID)
	}

	ctx, cancel := h.opCtx(r)
	defer cancel()

	records, err := h.Store.ListAvailabilityByEmployee(ctx, employeeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	dtos := make([]AvailabilityRecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = toAvailabilityDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListAvailabilitiesByOrganization returns the availability records of
// every active employee in an organization, for the scheduling grid.
// GET /api/employees/availabilities-by-organization?organizationId=
func (h *Handler) ListAvailabilitiesByOrganization(w http.ResponseWriter, r *http.Request) {
	orgID := schedule.OrganizationID(r.URL.Query().Get("organizationId"))
	if orgID == "" {
		writeError(w, http.StatusBadRequest, "organizationId is required", nil)
		return
	}

	ctx, cancel := h.opCtx(r)
	defer cancel()

	employees, err := h.Directory.ListEmployees(ctx, &orgID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dtos := []AvailabilityRecordDTO{}
	for _, e := range employees {
		records, err := h.Store.ListAvailabilityByEmployee(ctx, e.ID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		for _, rec := range records {
			dtos = append(dtos, toAvailabilityDTO(rec))
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) decodeAvailability(r *http.Request, id schedule.RecordID) (*schedule.AvailabilityRecord, error) {
	var req SaveAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.Join(schedule.ErrMalformedRecord, err)
	}
	start, err := schedule.ParseDate(req.EffectiveStart)
	if err != nil {
		return nil, err
	}
	end, err := schedule.ParseDate(req.EffectiveEnd)
	if err != nil {
		return nil, err
	}
	slots, err := slotsFromDTO(req.Availability)
	if err != nil {
		return nil, err
	}
	rec := schedule.AvailabilityRecord{
		ID:             id,
		EmployeeID:     schedule.EmployeeID(req.EmployeeID),
		EffectiveStart: start,
		EffectiveEnd:   end,
		Slots:          slots,
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// ListEmployees returns active employees, optionally scoped to an
// organization.
// GET /api/employees?organizationId=
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	var orgID *schedule.OrganizationID
	if v := r.URL.Query().Get("organizationId"); v != "" {
		id := schedule.OrganizationID(v)
		orgID = &id
	}

	ctx, cancel := h.opCtx(r)
	defer cancel()

	employees, err := h.Directory.ListEmployees(ctx, orgID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
// GET /api/employees/{id}
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.opCtx(r)
	defer cancel()

	emp, err := h.Directory.GetEmployee(ctx, schedule.EmployeeID(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// CreateEmployee creates an employee, or stages a pending request when
// the caller is a Manager.
// POST /api/employees
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())

	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctx, cancel := h.opCtx(r)
	defer cancel()

	result, err := h.Directory.CreateEmployee(ctx, principal.Actor(), directory.NewEmployee{
		Name:           req.Name,
		Email:          req.Email,
		Position:       req.Position,
		OrganizationID: orgIDFromString(req.OrganizationID),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if result.Pending != nil {
		writeJSON(w, http.StatusAccepted, toPendingRequestDTO(*result.Pending))
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(*result.Employee))
}

// UpdateEmployee replaces an employee's mutable fields.
// PUT /api/employees/{id}
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctx, cancel := h.opCtx(r)
	defer cancel()

	emp, err := h.Directory.UpdateEmployee(ctx, directory.Employee{
		ID:             schedule.EmployeeID(chi.URLParam(r, "id")),
		Name:           req.Name,
		Position:       req.Position,
		OrganizationID: orgIDFromString(req.OrganizationID),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// DeactivateEmployee soft-deletes an employee.
// DELETE /api/employees/{id}
func (h *Handler) DeactivateEmployee(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.opCtx(r)
	defer cancel()

	if err := h.Directory.DeactivateEmployee(ctx, schedule.EmployeeID(chi.URLParam(r, "id"))); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReactivateEmployee restores a deactivated employee by email.
// POST /api/employees/reactivate
func (h *Handler) ReactivateEmployee(w http.ResponseWriter, r *http.Request) {
	var req ReactivateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctx, cancel := h.opCtx(r)
	defer cancel()

	emp, err := h.Directory.ReactivateByEmail(ctx, req.Email)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// UserInfo describes the authenticated caller.
// GET /api/user-info
func (h *Handler) UserInfo(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	writeJSON(w, http.StatusOK, UserInfoDTO{
		ID:             principal.SubjectID,
		Position:       principal.Role,
		OrganizationID: orgIDString(principal.OrganizationID),
	})
}

// =============================================================================
// PENDING REQUESTS
// =============================================================================

// ListPendingRequests returns all staged hires.
// GET /api/employees/pending-requests
func (h *Handler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.opCtx(r)
	defer cancel()

	pending, err := h.Directory.ListPendingRequests(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	dtos := make([]PendingRequestDTO, len(pending))
	for i, p := range pending {
		dtos[i] = toPendingRequestDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ApprovePendingRequest promotes a staged hire to an employee.
// POST /api/employees/pending-requests/{id}/approve
func (h *Handler) ApprovePendingRequest(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())

	ctx, cancel := h.opCtx(r)
	defer cancel()

	emp, err := h.Directory.ApprovePendingRequest(ctx, principal.Actor(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(*emp))
}

// RejectPendingRequest deletes a staged hire.
// POST /api/employees/pending-requests/{id}/reject
func (h *Handler) RejectPendingRequest(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())

	ctx, cancel := h.opCtx(r)
	defer cancel()

	if err := h.Directory.RejectPendingRequest(ctx, principal.Actor(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ORGANIZATIONS
// =============================================================================

// ListOrganizations returns all organizations.
// GET /api/organizations
func (h *Handler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.opCtx(r)
	defer cancel()

	orgs, err := h.Directory.ListOrganizations(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	dtos := make([]OrganizationDTO, len(orgs))
	for i, o := range orgs {
		dtos[i] = toOrganizationDTO(o)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateOrganization creates an organization.
// POST /api/organizations
func (h *Handler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctx, cancel := h.opCtx(r)
	defer cancel()

	org, err := h.Directory.CreateOrganization(ctx, req.Name, req.Location)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrganizationDTO(*org))
}

// GetOrganization returns a single organization.
// GET /api/organizations/{id}
func (h *Handler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.opCtx(r)
	defer cancel()

	org, err := h.Directory.GetOrganization(ctx, schedule.OrganizationID(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrganizationDTO(*org))
}

// UpdateOrganization replaces name and location.
// PUT /api/organizations/{id}
func (h *Handler) UpdateOrganization(w http.ResponseWriter, r *http.Request) {
	var req CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctx, cancel := h.opCtx(r)
	defer cancel()

	org, err := h.Directory.UpdateOrganization(ctx, directory.Organization{
		ID:       schedule.OrganizationID(chi.URLParam(r, "id")),
		Name:     req.Name,
		Location: req.Location,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrganizationDTO(*org))
}

// CreateInvitation sends (or resends) a sign-up invite.
// POST /api/invitations
func (h *Handler) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	var req CreateInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctx, cancel := h.opCtx(r)
	defer cancel()

	if err := h.Directory.SendInvitation(ctx, req.EmailAddress, req.SignupPath); err != nil {
		writeError(w, http.StatusBadGateway, "failed to send invitation", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps a domain error to its status and stable code.
func writeDomainError(w http.ResponseWriter, err error) {
	status, code := statusForError(err)
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}

func statusForError(err error) (int, string) {
	if rej, ok := schedule.AsRejection(err); ok {
		switch rej.Kind {
		case schedule.KindInvalidRange:
			return http.StatusBadRequest, string(rej.Kind)
		case schedule.KindNotFound:
			return http.StatusNotFound, string(rej.Kind)
		case schedule.KindDoubleBooked:
			return http.StatusConflict, string(rej.Kind)
		case schedule.KindNoAvailability, schedule.KindOutsideAvailability:
			return http.StatusUnprocessableEntity, string(rej.Kind)
		case schedule.KindUnavailable:
			return http.StatusServiceUnavailable, string(rej.Kind)
		default:
			return http.StatusBadRequest, string(rej.Kind)
		}
	}

	switch {
	case schedule.IsNotFound(err):
		return http.StatusNotFound, string(schedule.KindNotFound)
	case errors.Is(err, directory.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, directory.ErrDuplicateEmail):
		return http.StatusConflict, "duplicate_email"
	case schedule.IsRetryable(err):
		return http.StatusServiceUnavailable, string(schedule.KindUnavailable)
	case schedule.IsClientError(err):
		return http.StatusBadRequest, string(schedule.KindMalformed)
	default:
		return http.StatusInternalServerError, "internal"
	}
}
