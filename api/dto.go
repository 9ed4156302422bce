/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  internal domain model from the wire contract. Clock times travel as
  "HH:MM" strings ("24:00" for end-of-day), dates as "YYYY-MM-DD".

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Payload-to-domain conversion happens here (slot set shape, clock and
  date parsing); business validation stays in the schedule and directory
  packages.
*/
package api

import (
	"fmt"
	"time"

	"github.com/warp/shift-engine/directory"
	"github.com/warp/shift-engine/schedule"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the standard error envelope. Code is the stable
// machine-readable rejection kind; clients never match on Error text.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// WarningDTO mirrors a warning-level diagnostic attached to a success.
type WarningDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// =============================================================================
// AVAILABILITY
// =============================================================================

// SlotDTO is one weekday's availability on the wire. StartTime/EndTime are
// null when the day is off or spans all day.
type SlotDTO struct {
	Day       string  `json:"day"`
	Available bool    `json:"available"`
	AllDay    bool    `json:"allDay"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
}

// AvailabilityRecordDTO represents a stored availability template.
type AvailabilityRecordDTO struct {
	ID             string    `json:"id"`
	EmployeeID     string    `json:"employeeId"`
	EffectiveStart string    `json:"effectiveStart"`
	EffectiveEnd   string    `json:"effectiveEnd"` // exclusive day-after-last
	Availability   []SlotDTO `json:"availability"`
}

// SaveAvailabilityRequest creates or replaces an availability record.
type SaveAvailabilityRequest struct {
	EmployeeID     string    `json:"employeeId"`
	EffectiveStart string    `json:"effectiveStart"`
	EffectiveEnd   string    `json:"effectiveEnd"`
	Availability   []SlotDTO `json:"availability"`
}

// WindowDTO is a half-open [start, end) time-of-day range.
type WindowDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SlotConsideredDTO is one resolver slot decision, for diagnostics/UI.
type SlotConsideredDTO struct {
	RecordID  string     `json:"recordId"`
	Day       string     `json:"day"`
	Available bool       `json:"available"`
	AllDay    bool       `json:"allDay"`
	Window    *WindowDTO `json:"window,omitempty"`
	Eligible  bool       `json:"eligible"`
}

// ResolveResponse is the resolver's answer for one (employee, date).
type ResolveResponse struct {
	EmployeeID      string              `json:"employeeId"`
	Date            string              `json:"date"`
	Outcome         string              `json:"outcome"`
	Windows         []WindowDTO         `json:"windows"`
	SlotsConsidered []SlotConsideredDTO `json:"slotsConsidered"`
	Records         []string            `json:"records,omitempty"`
}

// =============================================================================
// SHIFTS
// =============================================================================

// CreateShiftRequest proposes a shift assignment.
type CreateShiftRequest struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

// ShiftDTO represents a committed shift.
type ShiftDTO struct {
	ID         string      `json:"id"`
	EmployeeID string      `json:"employeeId"`
	Date       string      `json:"date"`
	StartTime  string      `json:"startTime"`
	EndTime    string      `json:"endTime"`
	CreatedAt  string      `json:"createdAt,omitempty"`
	Warning    *WarningDTO `json:"warning,omitempty"`
}

// EmployeeWeekDTO is one employee's row in the week view.
type EmployeeWeekDTO struct {
	EmployeeID string     `json:"employeeId"`
	Name       string     `json:"name,omitempty"`
	TotalHours string     `json:"totalHours"`
	Shifts     []ShiftDTO `json:"shifts"`
}

// WeekViewDTO is the week grid for an organization.
type WeekViewDTO struct {
	WeekStart string            `json:"weekStart"`
	WeekEnd   string            `json:"weekEnd"`
	Employees []EmployeeWeekDTO `json:"employees"`
}

// =============================================================================
// DIRECTORY
// =============================================================================

type EmployeeDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Position       string  `json:"position"`
	OrganizationID *string `json:"organizationId"`
	Active         bool    `json:"active"`
	CreatedAt      string  `json:"createdAt,omitempty"`
}

type CreateEmployeeRequest struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Position       string  `json:"position"`
	OrganizationID *string `json:"organizationId"`
}

type ReactivateEmployeeRequest struct {
	Email string `json:"email"`
}

type PendingRequestDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Position       string  `json:"position"`
	OrganizationID *string `json:"organizationId"`
	CreatedAt      string  `json:"createdAt"`
}

type OrganizationDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

type CreateOrganizationRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

type CreateInvitationRequest struct {
	EmailAddress string `json:"emailAddress"`
	SignupPath   string `json:"signupPath"`
}

// UserInfoDTO describes the authenticated caller.
type UserInfoDTO struct {
	ID             string  `json:"id"`
	Position       string  `json:"position"`
	OrganizationID *string `json:"organizationId"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

// slotsFromDTO validates the wire slot set and produces the canonical
// Monday-first array. Wrong weekday names, duplicates, and missing days
// are rejected here, before the store or resolver ever see the record.
func slotsFromDTO(in []SlotDTO) ([7]schedule.DailySlot, error) {
	var slots [7]schedule.DailySlot
	if len(in) != 7 {
		return slots, fmt.Errorf("%w: expected 7 slots, got %d", schedule.ErrMalformedRecord, len(in))
	}
	seen := [7]bool{}
	for _, dto := range in {
		day, err := schedule.ParseWeekday(dto.Day)
		if err != nil {
			return slots, err
		}
		if seen[day] {
			return slots, fmt.Errorf("%w: duplicate day %s", schedule.ErrMalformedRecord, day)
		}
		seen[day] = true

		slot := schedule.DailySlot{Day: day, Available: dto.Available, AllDay: dto.AllDay}
		if dto.AllDay {
			slot.Available = true
		}
		if slot.Available && !slot.AllDay {
			if dto.StartTime == nil || dto.EndTime == nil {
				return slots, fmt.Errorf("%w: %s available without times", schedule.ErrMalformedRecord, day)
			}
			if slot.Start, err = schedule.ParseClock(*dto.StartTime); err != nil {
				return slots, err
			}
			if slot.End, err = schedule.ParseClockEnd(*dto.EndTime); err != nil {
				return slots, err
			}
		}
		slots[day] = slot
	}
	return slots, nil
}

func toSlotDTOs(slots [7]schedule.DailySlot) []SlotDTO {
	out := make([]SlotDTO, 7)
	for i, s := range slots {
		dto := SlotDTO{Day: s.Day.String(), Available: s.Available, AllDay: s.AllDay}
		if s.Available && !s.AllDay {
			start, end := s.Start.String(), s.End.String()
			dto.StartTime, dto.EndTime = &start, &end
		}
		out[i] = dto
	}
	return out
}

func toAvailabilityDTO(rec schedule.AvailabilityRecord) AvailabilityRecordDTO {
	return AvailabilityRecordDTO{
		ID:             string(rec.ID),
		EmployeeID:     string(rec.EmployeeID),
		EffectiveStart: rec.EffectiveStart.String(),
		EffectiveEnd:   rec.EffectiveEnd.String(),
		Availability:   toSlotDTOs(rec.Slots),
	}
}

func toResolveResponse(res schedule.Resolution) ResolveResponse {
	out := ResolveResponse{
		EmployeeID:      string(res.EmployeeID),
		Date:            res.Date.String(),
		Outcome:         string(res.Outcome),
		Windows:         []WindowDTO{},
		SlotsConsidered: []SlotConsideredDTO{},
	}
	for _, w := range res.Windows {
		out.Windows = append(out.Windows, WindowDTO{Start: w.Start.String(), End: w.End.String()})
	}
	for _, sd := range res.Slots {
		dto := SlotConsideredDTO{
			RecordID:  string(sd.RecordID),
			Day:       sd.Slot.Day.String(),
			Available: sd.Slot.Available,
			AllDay:    sd.Slot.AllDay,
			Eligible:  sd.Eligible,
		}
		if sd.Eligible {
			dto.Window = &WindowDTO{Start: sd.Window.Start.String(), End: sd.Window.End.String()}
		}
		out.SlotsConsidered = append(out.SlotsConsidered, dto)
	}
	for _, id := range res.Records {
		out.Records = append(out.Records, string(id))
	}
	return out
}

func toShiftDTO(s schedule.ScheduledShift) ShiftDTO {
	return ShiftDTO{
		ID:         string(s.ID),
		EmployeeID: string(s.EmployeeID),
		Date:       s.Date.String(),
		StartTime:  s.Start.String(),
		EndTime:    s.End.String(),
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
	}
}

func toEmployeeDTO(e directory.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:             string(e.ID),
		Name:           e.Name,
		Email:          e.Email,
		Position:       e.Position,
		OrganizationID: orgIDString(e.OrganizationID),
		Active:         e.Active,
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
	}
}

func toPendingRequestDTO(p directory.PendingRequest) PendingRequestDTO {
	return PendingRequestDTO{
		ID:             p.ID,
		Name:           p.Name,
		Email:          p.Email,
		Position:       p.Position,
		OrganizationID: orgIDString(p.OrganizationID),
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
	}
}

func toOrganizationDTO(o directory.Organization) OrganizationDTO {
	return OrganizationDTO{ID: string(o.ID), Name: o.Name, Location: o.Location}
}

func orgIDString(id *schedule.OrganizationID) *string {
	if id == nil {
		return nil
	}
	s := string(*id)
	return &s
}

func orgIDFromString(s *string) *schedule.OrganizationID {
	if s == nil || *s == "" {
		return nil
	}
	id := schedule.OrganizationID(*s)
	return &id
}
