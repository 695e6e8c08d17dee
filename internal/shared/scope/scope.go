package scope

import "gorm.io/gorm"

// Employee restricts a query to rows owned by one employee code.
func Employee(employeeID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("employee_id = ?", employeeID)
	}
}

// EmployeeDay restricts a query to one employee's row for a calendar date.
func EmployeeDay(employeeID, date string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("employee_id = ? AND date = ?", employeeID, date)
	}
}
