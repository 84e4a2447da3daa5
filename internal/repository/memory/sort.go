package memory

import (
	"sort"

	"github.com/chronohr/timesheet-backend-go/internal/domain/timesheet"
)

// sortTimesheets orders newest work date first, then by employee for a
// stable listing within a date.
func sortTimesheets(sheets []timesheet.Timesheet) {
	sort.Slice(sheets, func(i, j int) bool {
		if !sheets[i].Date.Equal(sheets[j].Date) {
			return sheets[i].Date.After(sheets[j].Date)
		}
		return sheets[i].EmployeeID < sheets[j].EmployeeID
	})
}
