package validate

import "fmt"

// Plausibility bounds for the number of complaints a sheet should carry.
// A sheet far outside this window usually means a truncated or runaway
// export, so the result is flagged but the parse itself still succeeds.
const (
	MinReportsPerDay = 5
	MaxReportsPerDay = 50
)

// DailyLimitCheck is the advisory result of the report-count plausibility
// check, surfaced in the response metadata rather than the error list.
type DailyLimitCheck struct {
	Valid   bool
	Message string
}

// DailyLimit checks the total report count against the plausibility window.
func DailyLimit(totalReports int) DailyLimitCheck {
	switch {
	case totalReports < MinReportsPerDay:
		return DailyLimitCheck{
			Valid: false,
			Message: fmt.Sprintf("Too few complaints: %d. Minimum required: %d per day.",
				totalReports, MinReportsPerDay),
		}
	case totalReports > MaxReportsPerDay:
		return DailyLimitCheck{
			Valid: false,
			Message: fmt.Sprintf("Too many complaints: %d. Maximum allowed: %d per day.",
				totalReports, MaxReportsPerDay),
		}
	default:
		return DailyLimitCheck{
			Valid: true,
			Message: fmt.Sprintf("Valid complaint count: %d complaints (within daily limits of %d-%d)",
				totalReports, MinReportsPerDay, MaxReportsPerDay),
		}
	}
}
