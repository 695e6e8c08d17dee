package attendance

import (
	"context"
	"database/sql"
	"errors"

	"go-attendance/internal/shared/connection"
	"go-attendance/internal/shared/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Attendance, error)
	FindByEmployee(ctx context.Context, employeeID string, limit int) ([]Attendance, error)
	FindAll(ctx context.Context, filter AttendanceFilter, limit int) ([]Attendance, error)
	SignIn(ctx context.Context, a *Attendance) (bool, error)
	SignOut(ctx context.Context, a *Attendance) (bool, error)
	DeleteByEmployee(ctx context.Context, employeeID string) (int64, error)
	FindEmployee(ctx context.Context, employeeCode string) (*EmployeeRef, error)
	CountActiveEmployees(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.WithSQLTx(ctx, r.db, r.tx)
}

// FindByEmployeeAndDate returns nil when no record exists.
func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).
		Scopes(scope.EmployeeDay(employeeID, date)).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string, limit int) ([]Attendance, error) {
	var rows []Attendance
	q := r.conn(ctx).
		Scopes(scope.Employee(employeeID)).
		Order("date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context, filter AttendanceFilter, limit int) ([]Attendance, error) {
	q := r.conn(ctx).Model(&Attendance{}).Preload("Employee")
	if filter.Date != "" {
		q = q.Where("date = ?", filter.Date)
	}
	switch filter.Status {
	case StatusIncompleteSessions:
		q = q.Where("sign_in_time IS NOT NULL AND sign_out_time IS NULL")
	case StatusCompletedSessions:
		q = q.Where("sign_in_time IS NOT NULL AND sign_out_time IS NOT NULL")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []Attendance
	err := q.Order("date DESC, sign_in_time DESC").Find(&rows).Error
	return rows, err
}

// SignIn records the sign-in unless one already exists for (employee, date).
// It reports false when another request got there first.
func (r *repository) SignIn(ctx context.Context, a *Attendance) (bool, error) {
	res := r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(a)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 1 {
		return true, nil
	}

	res = r.conn(ctx).
		Model(&Attendance{}).
		Scopes(scope.EmployeeDay(a.EmployeeID, a.Date)).
		Where("sign_in_time IS NULL").
		Updates(map[string]any{
			"sign_in_time":      a.SignInTime,
			"work_location":     a.WorkLocation,
			"wfh_approved":      a.WFHApproved,
			"office_name":       a.OfficeName,
			"sign_in_latitude":  a.SignInLatitude,
			"sign_in_longitude": a.SignInLongitude,
			"updated_at":        a.UpdatedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// SignOut closes the record; false means it was already closed.
func (r *repository) SignOut(ctx context.Context, a *Attendance) (bool, error) {
	res := r.conn(ctx).
		Model(&Attendance{}).
		Where("id = ? AND sign_out_time IS NULL", a.ID).
		Updates(map[string]any{
			"sign_out_time":      a.SignOutTime,
			"total_hours":        a.TotalHours,
			"sign_out_latitude":  a.SignOutLatitude,
			"sign_out_longitude": a.SignOutLongitude,
			"updated_at":         a.UpdatedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) DeleteByEmployee(ctx context.Context, employeeID string) (int64, error) {
	res := r.conn(ctx).Scopes(scope.Employee(employeeID)).Delete(&Attendance{})
	return res.RowsAffected, res.Error
}

// FindEmployee returns nil for an unknown employee code.
func (r *repository) FindEmployee(ctx context.Context, employeeCode string) (*EmployeeRef, error) {
	var e EmployeeRef
	err := r.conn(ctx).
		Where("employee_code = ?", employeeCode).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) CountActiveEmployees(ctx context.Context) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&EmployeeRef{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
