package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	WorkLocationOffice = "office"
	WorkLocationHome   = "home"
)

const (
	StateNone      = "none"
	StateSignedIn  = "signed_in"
	StateSignedOut = "signed_out"
)

const (
	StatusIncompleteSessions = "incomplete_sessions"
	StatusCompletedSessions  = "completed_sessions"
)

// Attendance is one employee's record for one calendar date.
type Attendance struct {
	ID               uuid.UUID    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID       string       `gorm:"column:employee_id;type:varchar(50);not null;uniqueIndex:ux_attendance_employee_date"`
	Date             string       `gorm:"column:date;type:char(10);not null;uniqueIndex:ux_attendance_employee_date;index"`
	SignInTime       *time.Time   `gorm:"column:sign_in_time;type:timestamptz"`
	SignOutTime      *time.Time   `gorm:"column:sign_out_time;type:timestamptz"`
	TotalHours       *float64     `gorm:"column:total_hours;type:double precision"`
	WorkLocation     string       `gorm:"column:work_location;type:varchar(10);not null;default:office"`
	WFHApproved      bool         `gorm:"column:wfh_approved;not null;default:false"`
	OfficeName       string       `gorm:"column:office_name;type:varchar(100)"`
	SignInLatitude   *float64     `gorm:"column:sign_in_latitude"`
	SignInLongitude  *float64     `gorm:"column:sign_in_longitude"`
	SignOutLatitude  *float64     `gorm:"column:sign_out_latitude"`
	SignOutLongitude *float64     `gorm:"column:sign_out_longitude"`
	CreatedAt        time.Time    `gorm:"column:created_at"`
	UpdatedAt        time.Time    `gorm:"column:updated_at"`
	Employee         *EmployeeRef `gorm:"foreignKey:EmployeeID;references:EmployeeCode"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// State derives the sign-in state machine position from the timestamps.
func (a *Attendance) State() string {
	switch {
	case a == nil || a.SignInTime == nil:
		return StateNone
	case a.SignOutTime == nil:
		return StateSignedIn
	default:
		return StateSignedOut
	}
}

type EmployeeRef struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string    `gorm:"column:employee_code"`
	Name         string    `gorm:"column:name"`
	Department   string    `gorm:"column:department"`
	IsActive     bool      `gorm:"column:is_active"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
