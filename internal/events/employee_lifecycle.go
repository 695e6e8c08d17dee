package events

import "time"

const EmployeeLifecycleTopic = "attendance.employee.lifecycle.v1"

const (
	EmployeeCreated       = "employee_created"
	EmployeeStatusChanged = "employee_status_changed"
	EmployeeDeleted       = "employee_deleted"
)

type EmployeeLifecycleEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	IsActive     bool      `json:"is_active"`
	OccurredAt   time.Time `json:"occurred_at"`
}
