package timesheet

import (
	"context"
	"database/sql"
	"errors"

	"go-attendance/internal/shared/connection"
	"go-attendance/internal/shared/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=timesheet_repo.go -destination=mock/timesheet_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, t *Timesheet) error
	FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Timesheet, error)
	FindByEmployee(ctx context.Context, employeeID string, limit int) ([]Timesheet, error)
	FindAll(ctx context.Context, filter ListFilter, limit int) ([]Timesheet, error)
	DeleteByEmployee(ctx context.Context, employeeID string) (int64, error)
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

// Upsert keeps one row per (employee_id, date); a resubmission overwrites the content.
func (r *repository) Upsert(ctx context.Context, t *Timesheet) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"tasks_completed",
				"challenges_faced",
				"achievements",
				"tomorrow_plans",
				"additional_notes",
				"submitted_at",
				"updated_at",
			}),
		}).
		Create(t).Error
}

// FindByEmployeeAndDate returns nil when nothing was submitted.
func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Timesheet, error) {
	var t Timesheet
	err := r.conn(ctx).
		Scopes(scope.EmployeeDay(employeeID, date)).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string, limit int) ([]Timesheet, error) {
	var rows []Timesheet
	err := r.conn(ctx).
		Scopes(scope.Employee(employeeID)).
		Order("date DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter, limit int) ([]Timesheet, error) {
	q := r.conn(ctx).Model(&Timesheet{}).Preload("Employee")
	if filter.Date != "" {
		q = q.Where("date = ?", filter.Date)
	}
	if filter.EmployeeID != "" {
		q = q.Scopes(scope.Employee(filter.EmployeeID))
	}

	var rows []Timesheet
	err := q.Order("date DESC, submitted_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteByEmployee(ctx context.Context, employeeID string) (int64, error) {
	res := r.conn(ctx).Scopes(scope.Employee(employeeID)).Delete(&Timesheet{})
	return res.RowsAffected, res.Error
}
