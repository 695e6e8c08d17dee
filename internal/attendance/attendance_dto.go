package attendance

import (
	"bytes"
	"encoding/json"

	"go-attendance/internal/geofence"
	"go-attendance/internal/report"
)

type SignInRequest struct {
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
	WorkFromHome        bool     `json:"work_from_home"`
	ConfirmOfficeSignIn bool     `json:"confirm_office_sign_in"`
}

type SignOutRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// UnmarshalJSON accepts coordinates as numbers or numeric strings. Anything
// else leaves the coordinate nil, which the geofence treats as outside.
func (r *SignInRequest) UnmarshalJSON(data []byte) error {
	type plain SignInRequest
	aux := struct {
		*plain
		Latitude  json.RawMessage `json:"latitude"`
		Longitude json.RawMessage `json:"longitude"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Latitude = decodeCoordinate(aux.Latitude)
	r.Longitude = decodeCoordinate(aux.Longitude)
	return nil
}

func (r *SignOutRequest) UnmarshalJSON(data []byte) error {
	type plain SignOutRequest
	aux := struct {
		*plain
		Latitude  json.RawMessage `json:"latitude"`
		Longitude json.RawMessage `json:"longitude"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Latitude = decodeCoordinate(aux.Latitude)
	r.Longitude = decodeCoordinate(aux.Longitude)
	return nil
}

func decodeCoordinate(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil
		}
	} else {
		text = string(raw)
	}
	// ParseCoordinate rejects null, booleans and non-finite values.
	return geofence.ParseCoordinate(text)
}

type AttendanceFilter struct {
	Date   string `form:"date" binding:"omitempty,isodate"`
	Status string `form:"status" binding:"omitempty,oneof=incomplete_sessions completed_sessions"`
}

type AttendanceResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name,omitempty"`
	Department   string   `json:"department,omitempty"`
	Date         string   `json:"date"`
	State        string   `json:"state"`
	SignInTime   *string  `json:"sign_in_time,omitempty"`
	SignOutTime  *string  `json:"sign_out_time,omitempty"`
	TotalHours   *float64 `json:"total_hours,omitempty"`
	WorkLocation string   `json:"work_location"`
	WFHApproved  bool     `json:"wfh_approved"`
	OfficeName   string   `json:"office_name,omitempty"`
}

type SignInResponse struct {
	Message           string             `json:"message"`
	WithinOfficeHours bool               `json:"within_office_hours"`
	Attendance        AttendanceResponse `json:"attendance"`
}

type SignOutResponse struct {
	Message     string             `json:"message"`
	HoursWorked HoursWorked        `json:"hours_worked"`
	Attendance  AttendanceResponse `json:"attendance"`
}

type MyAttendanceResponse struct {
	Records []AttendanceResponse `json:"records"`
	Stats   report.Stats         `json:"stats"`
}

type TodayAttendanceResponse struct {
	Date        string              `json:"date"`
	State       string              `json:"state"`
	WFHApproved bool                `json:"wfh_approved"`
	Attendance  *AttendanceResponse `json:"attendance,omitempty"`
}

type DashboardResponse struct {
	Summary report.DailySummary  `json:"summary"`
	Records []AttendanceResponse `json:"records"`
}
