package employee

import (
	"time"

	"github.com/google/uuid"
)

// Employee is addressed by ID internally and by EmployeeCode (e.g. EMP001)
// everywhere attendance, timesheets and WFH approvals refer to it.
type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string    `gorm:"column:employee_code;type:varchar(50);not null;uniqueIndex:uq_employee_code"`
	Name         string    `gorm:"type:varchar(150);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	Department   string    `gorm:"type:varchar(100)"`
	IsActive     bool      `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
