package wfh

import (
	"time"

	"go-attendance/internal/shared/dateutil"

	"github.com/google/uuid"
)

// Approval grants an employee work-from-home for every date in [StartDate, EndDate].
// Rows are never edited once written.
type Approval struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID string    `gorm:"type:varchar(50);not null;index:idx_wfh_employee_dates"`
	StartDate  string    `gorm:"type:char(10);not null;index:idx_wfh_employee_dates"`
	EndDate    string    `gorm:"type:char(10);not null;index:idx_wfh_employee_dates"`
	Reason     string    `gorm:"type:text"`
	ApprovedBy string    `gorm:"type:varchar(100);not null"`
	CreatedAt  time.Time
}

func (Approval) TableName() string {
	return "wfh_approvals"
}

// Covers reports whether any approval spans date.
func Covers(approvals []Approval, date string) bool {
	for _, a := range approvals {
		if dateutil.InRange(date, a.StartDate, a.EndDate) {
			return true
		}
	}
	return false
}
