package wfh

import (
	"context"
	"database/sql"

	"go-attendance/internal/shared/connection"
	"go-attendance/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=wfh_repo.go -destination=mock/wfh_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Approval) error
	FindByEmployee(ctx context.Context, employeeID string) ([]Approval, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Approval, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, a *Approval) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Approval, error) {
	var rows []Approval
	err := r.conn(ctx).
		Scopes(scope.Employee(employeeID)).
		Order("start_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Approval, error) {
	q := r.conn(ctx).Model(&Approval{})
	if filter.EmployeeID != "" {
		q = q.Scopes(scope.Employee(filter.EmployeeID))
	}
	if filter.Date != "" {
		q = q.Where("start_date <= ? AND end_date >= ?", filter.Date, filter.Date)
	}

	var rows []Approval
	err := q.Order("created_at DESC").Limit(100).Find(&rows).Error
	return rows, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("employees").
		Where("employee_code = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) DeleteByEmployee(ctx context.Context, employeeID string) (int64, error) {
	res := r.conn(ctx).Scopes(scope.Employee(employeeID)).Delete(&Approval{})
	return res.RowsAffected, res.Error
}
