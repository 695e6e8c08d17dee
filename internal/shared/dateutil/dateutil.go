// Package dateutil holds the calendar-date helpers shared by attendance,
// timesheets and WFH approvals. Dates travel as YYYY-MM-DD strings so that
// lexicographic order matches chronological order.
package dateutil

import (
	"time"
)

const Layout = "2006-01-02"

// Clock yields the current instant; services take one so tests can pin "today".
type Clock func() time.Time

// Today formats now in loc as a calendar date.
func Today(now time.Time, loc *time.Location) string {
	if loc != nil {
		now = now.In(loc)
	}
	return now.Format(Layout)
}

func Valid(s string) bool {
	_, err := time.Parse(Layout, s)
	return err == nil
}

// InRange reports start <= date <= end using string comparison.
func InRange(date, start, end string) bool {
	return start <= date && date <= end
}
