/*
main.go - Demo data seeder

PURPOSE:
  Populates a database with organizations, employees, availability
  records, and a handful of shifts so the API has something to show.
  All shifts go through the validator, so seeded data always satisfies
  the scheduling invariants.

USAGE:
  ./seed -db="./shifts.db" -orgs=2 -employees=8

  Re-running against the same database adds more data; it does not
  reset anything.
*/
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/brianvoe/gofakeit"

	"github.com/warp/shift-engine/directory"
	"github.com/warp/shift-engine/schedule"
	"github.com/warp/shift-engine/store/sqlite"
)

func main() {
	dbPath := flag.String("db", "shifts.db", "SQLite database path")
	orgCount := flag.Int("orgs", 2, "organizations to create")
	empCount := flag.Int("employees", 8, "employees per organization")
	flag.Parse()

	gofakeit.Seed(time.Now().UnixNano())

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	dir := directory.NewService(store, directory.LogSender{})
	validator := schedule.NewValidator(store)

	admin := directory.Actor{SubjectID: "seed", Role: directory.PositionAdmin}
	weekStart := schedule.StartOfWeek(schedule.Today())

	for i := 0; i < *orgCount; i++ {
		org, err := dir.CreateOrganization(ctx, gofakeit.Company(), gofakeit.City())
		if err != nil {
			log.Fatalf("create organization: %v", err)
		}
		log.Printf("organization %s (%s)", org.Name, org.ID)

		for j := 0; j < *empCount; j++ {
			result, err := dir.CreateEmployee(ctx, admin, directory.NewEmployee{
				Name:           gofakeit.Name(),
				Email:          gofakeit.Email(),
				Position:       position(j),
				OrganizationID: &org.ID,
			})
			if err != nil {
				log.Printf("create employee: %v", err)
				continue
			}
			emp := result.Employee

			rec := weekdayAvailability(emp.ID, weekStart)
			if err := store.CreateAvailability(ctx, rec); err != nil {
				log.Fatalf("create availability: %v", err)
			}

			// A few shifts inside the availability, through the validator.
			for _, day := range []int{0, 2, 4} {
				_, err := validator.AssignShift(ctx, schedule.Proposal{
					EmployeeID: emp.ID,
					Date:       weekStart.AddDays(day),
					Start:      9 * 60,
					End:        (9 + schedule.ClockTime(4+gofakeit.Number(0, 4))) * 60,
					ProposedBy: "seed",
				})
				if err != nil {
					log.Printf("shift for %s skipped: %v", emp.Name, err)
				}
			}
		}
	}

	log.Println("Seed complete")
}

func position(i int) string {
	switch i {
	case 0:
		return directory.PositionAdmin
	case 1:
		return directory.PositionManager
	default:
		return "Associate"
	}
}

// weekdayAvailability builds a 09:00-18:00 Monday-to-Friday record
// covering four weeks from weekStart.
func weekdayAvailability(employeeID schedule.EmployeeID, weekStart schedule.Date) schedule.AvailabilityRecord {
	var slots [7]schedule.DailySlot
	for d := schedule.Monday; d <= schedule.Sunday; d++ {
		slot := schedule.DailySlot{Day: d}
		if d <= schedule.Friday {
			slot.Available = true
			slot.Start = 9 * 60
			slot.End = 18 * 60
		}
		slots[d] = slot
	}
	return schedule.AvailabilityRecord{
		ID:             schedule.RecordID(gofakeit.UUID()),
		EmployeeID:     employeeID,
		EffectiveStart: weekStart,
		EffectiveEnd:   weekStart.AddDays(28),
		Slots:          slots,
		CreatedAt:      time.Now().UTC(),
	}
}
