package schedule

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// WEEK VIEW - Committed shifts grouped per employee for rendering
// =============================================================================

var minutesPerHour = decimal.NewFromInt(60)

// EmployeeWeek is one employee's row in the week grid.
type EmployeeWeek struct {
	EmployeeID EmployeeID
	Shifts     []ScheduledShift
	// TotalHours sums the shift lengths exactly; 7h30m is 7.5, not a
	// float approximation.
	TotalHours decimal.Decimal
}

// WeekView is the week grid for one organization.
type WeekView struct {
	WeekStart Date
	WeekEnd   Date
	Employees []EmployeeWeek
}

// BuildWeekView groups shifts per employee and totals their hours.
// Rows are ordered by employee id, shifts by date then start time.
func BuildWeekView(weekStart, weekEnd Date, shifts []ScheduledShift) WeekView {
	byEmployee := make(map[EmployeeID][]ScheduledShift)
	for _, s := range shifts {
		byEmployee[s.EmployeeID] = append(byEmployee[s.EmployeeID], s)
	}

	view := WeekView{WeekStart: weekStart, WeekEnd: weekEnd}
	for id, group := range byEmployee {
		sort.Slice(group, func(i, j int) bool {
			if !group[i].Date.Equal(group[j].Date) {
				return group[i].Date.Before(group[j].Date)
			}
			return group[i].Start < group[j].Start
		})

		minutes := 0
		for _, s := range group {
			minutes += s.Minutes()
		}
		view.Employees = append(view.Employees, EmployeeWeek{
			EmployeeID: id,
			Shifts:     group,
			TotalHours: decimal.NewFromInt(int64(minutes)).Div(minutesPerHour),
		})
	}
	sort.Slice(view.Employees, func(i, j int) bool {
		return view.Employees[i].EmployeeID < view.Employees[j].EmployeeID
	})
	return view
}
