package timesheet

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Timesheet is an employee's daily report; at most one exists per (employee, date).
type Timesheet struct {
	ID              uuid.UUID    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID      string       `gorm:"column:employee_id;type:varchar(50);not null;uniqueIndex:ux_timesheet_employee_date"`
	Date            string       `gorm:"column:date;type:char(10);not null;uniqueIndex:ux_timesheet_employee_date;index"`
	TasksCompleted  string       `gorm:"column:tasks_completed;type:text;not null"`
	ChallengesFaced string       `gorm:"column:challenges_faced;type:text"`
	Achievements    string       `gorm:"column:achievements;type:text"`
	TomorrowPlans   string       `gorm:"column:tomorrow_plans;type:text"`
	AdditionalNotes string       `gorm:"column:additional_notes;type:text"`
	SubmittedAt     time.Time    `gorm:"column:submitted_at;not null"`
	CreatedAt       time.Time    `gorm:"column:created_at"`
	UpdatedAt       time.Time    `gorm:"column:updated_at"`
	Employee        *EmployeeRef `gorm:"foreignKey:EmployeeID;references:EmployeeCode"`
}

func (Timesheet) TableName() string {
	return "timesheets"
}

// Report joins the non-empty free-text sections.
func (t Timesheet) Report() string {
	parts := make([]string, 0, 5)
	for _, s := range []string{t.TasksCompleted, t.ChallengesFaced, t.Achievements, t.TomorrowPlans, t.AdditionalNotes} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " | ")
}

type EmployeeRef struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string    `gorm:"column:employee_code"`
	Name         string    `gorm:"column:name"`
	Department   string    `gorm:"column:department"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
