package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

var (
	AttendanceCSVHeader = []string{
		"date", "employee_id", "name", "department", "sign_in", "sign_out",
		"total_hours", "work_location", "wfh_approved",
	}
	TimesheetCSVHeader = []string{
		"date", "employee_id", "name", "department", "submitted_at", "report",
	}
)

type AttendanceRow struct {
	Date         string
	EmployeeID   string
	Name         string
	Department   string
	SignInTime   *time.Time
	SignOutTime  *time.Time
	TotalHours   *float64
	WorkLocation string
	WFHApproved  bool
}

type TimesheetRow struct {
	Date        string
	EmployeeID  string
	Name        string
	Department  string
	SubmittedAt time.Time
	Report      string
}

func WriteAttendanceCSV(w io.Writer, rows []AttendanceRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(AttendanceCSVHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Date,
			r.EmployeeID,
			r.Name,
			r.Department,
			formatClock(r.SignInTime),
			formatClock(r.SignOutTime),
			formatHours(r.TotalHours),
			r.WorkLocation,
			strconv.FormatBool(r.WFHApproved),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteTimesheetCSV(w io.Writer, rows []TimesheetRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TimesheetCSVHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Date,
			r.EmployeeID,
			r.Name,
			r.Department,
			r.SubmittedAt.Format(time.RFC3339),
			r.Report,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04:05")
}

func formatHours(h *float64) string {
	if h == nil {
		return ""
	}
	return strconv.FormatFloat(*h, 'f', 2, 64)
}
