// Package report aggregates attendance records into per-employee statistics,
// the admin daily summary and CSV exports.
package report

import (
	"fmt"
	"math"
	"time"
)

const (
	DefaultAvgSignIn  = "09:00"
	DefaultAvgSignOut = "17:00"
)

// Record is the slice of an attendance row the aggregator needs. Times are
// expected in the location they should be reported in.
type Record struct {
	Date        string
	SignInTime  *time.Time
	SignOutTime *time.Time
	TotalHours  *float64
}

type Stats struct {
	TotalDays      int     `json:"total_days"`
	TotalHours     float64 `json:"total_hours"`
	CompleteDays   int     `json:"complete_days"`
	AvgHoursPerDay float64 `json:"avg_hours_per_day"`
	AvgSignIn      string  `json:"avg_signin_time"`
	AvgSignOut     string  `json:"avg_signout_time"`
}

// Summarize computes totals over records. Missing hours count as zero.
// Average clock times average the hour and minute components separately.
func Summarize(records []Record) Stats {
	stats := Stats{
		TotalDays:  len(records),
		AvgSignIn:  DefaultAvgSignIn,
		AvgSignOut: DefaultAvgSignOut,
	}

	var signIns, signOuts []time.Time
	for _, r := range records {
		if r.TotalHours != nil {
			stats.TotalHours += *r.TotalHours
		}
		if r.SignInTime != nil && r.SignOutTime != nil {
			stats.CompleteDays++
		}
		if r.SignInTime != nil {
			signIns = append(signIns, *r.SignInTime)
		}
		if r.SignOutTime != nil {
			signOuts = append(signOuts, *r.SignOutTime)
		}
	}

	if stats.TotalDays > 0 {
		stats.AvgHoursPerDay = Round(stats.TotalHours/float64(stats.TotalDays), 4)
	}
	if len(signIns) > 0 {
		stats.AvgSignIn = averageClock(signIns)
	}
	if len(signOuts) > 0 {
		stats.AvgSignOut = averageClock(signOuts)
	}
	return stats
}

func averageClock(times []time.Time) string {
	var hours, minutes int
	for _, t := range times {
		hours += t.Hour()
		minutes += t.Minute()
	}
	n := len(times)
	return fmt.Sprintf("%02d:%02d", hours/n, minutes/n)
}

// Round rounds half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// DailySummary backs the admin dashboard counters.
type DailySummary struct {
	Date           string `json:"date"`
	TotalEmployees int64  `json:"total_employees"`
	SignedInToday  int    `json:"signed_in_today"`
	SignedOutToday int    `json:"signed_out_today"`
}

// SummarizeDay counts records of date; signed in means no sign-out yet.
func SummarizeDay(date string, activeEmployees int64, records []Record) DailySummary {
	s := DailySummary{Date: date, TotalEmployees: activeEmployees}
	for _, r := range records {
		if r.Date != date || r.SignInTime == nil {
			continue
		}
		if r.SignOutTime == nil {
			s.SignedInToday++
		} else {
			s.SignedOutToday++
		}
	}
	return s
}
