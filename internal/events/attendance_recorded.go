package events

import "time"

const AttendanceTopic = "attendance.records.v1"

const (
	AttendanceSignedIn  = "attendance_signed_in"
	AttendanceSignedOut = "attendance_signed_out"
	TimesheetSubmitted  = "timesheet_submitted"
	WFHApproved         = "wfh_approved"
)

type AttendanceRecordedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EmployeeID   string    `json:"employee_id"`
	Date         string    `json:"date"`
	WorkLocation string    `json:"work_location,omitempty"`
	OfficeName   string    `json:"office_name,omitempty"`
	TotalHours   *float64  `json:"total_hours,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type WFHApprovedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	ApprovalID string    `json:"approval_id"`
	EmployeeID string    `json:"employee_id"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	ApprovedBy string    `json:"approved_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
