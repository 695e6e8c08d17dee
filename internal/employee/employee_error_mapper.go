package employee

import (
	"errors"
	"strings"

	employeeerrors "go-attendance/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// uniqueViolations maps the employee table's unique indexes to their conflicts.
var uniqueViolations = map[string]error{
	"uq_employee_code":  employeeerrors.ErrEmployeeCodeAlreadyExists,
	"uq_employee_email": employeeerrors.ErrEmployeeEmailAlreadyExists,
}

func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return employeeerrors.ErrEmployeeNotFound
	}

	if mapped, ok := uniqueViolations[violatedConstraint(err)]; ok {
		return mapped
	}
	return err
}

// violatedConstraint names the unique index behind err, or "" when err is not
// a unique violation. Drivers that do not surface *pgconn.PgError are matched
// on the message text.
func violatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation {
			return pgErr.ConstraintName
		}
		return ""
	}

	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "duplicate key value") {
		return ""
	}
	for name := range uniqueViolations {
		if strings.Contains(msg, name) {
			return name
		}
	}
	return ""
}
