package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/shift-engine/schedule"
)

func TestBuildWeekView_GroupsAndTotals(t *testing.T) {
	weekStart := date(t, "2024-06-03")
	shifts := []schedule.ScheduledShift{
		{ID: "s3", EmployeeID: "emp-2", Date: weekStart.AddDays(1), Start: clock(t, "10:00"), End: clock(t, "14:00")},
		{ID: "s2", EmployeeID: "emp-1", Date: weekStart.AddDays(2), Start: clock(t, "09:00"), End: clock(t, "12:30")},
		{ID: "s1", EmployeeID: "emp-1", Date: weekStart, Start: clock(t, "09:00"), End: clock(t, "13:00")},
	}

	view := schedule.BuildWeekView(weekStart, weekStart.AddDays(7), shifts)

	// Rows ordered by employee, shifts by date.
	if assert.Len(t, view.Employees, 2) {
		emp1 := view.Employees[0]
		assert.Equal(t, schedule.EmployeeID("emp-1"), emp1.EmployeeID)
		assert.Equal(t, schedule.ShiftID("s1"), emp1.Shifts[0].ID)
		assert.Equal(t, schedule.ShiftID("s2"), emp1.Shifts[1].ID)
		// 4h + 3h30m = 7.5, exact
		assert.Equal(t, "7.5", emp1.TotalHours.String())

		assert.Equal(t, "4", view.Employees[1].TotalHours.String())
	}
}

func TestBuildWeekView_Empty(t *testing.T) {
	view := schedule.BuildWeekView(date(t, "2024-06-03"), date(t, "2024-06-10"), nil)
	assert.Empty(t, view.Employees)
}
