package scope

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type record struct {
	ID int
}

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

func TestEmployee(t *testing.T) {
	var rows []record
	stmt := dryRunDB(t).Scopes(Employee("EMP001")).Find(&rows).Statement

	assert.Contains(t, stmt.SQL.String(), "employee_id = $1")
	assert.Equal(t, []interface{}{"EMP001"}, stmt.Vars)
}

func TestEmployeeDay(t *testing.T) {
	var rows []record
	stmt := dryRunDB(t).Scopes(EmployeeDay("EMP001", "2024-05-01")).Find(&rows).Statement

	assert.Contains(t, stmt.SQL.String(), "employee_id = $1 AND date = $2")
	assert.Equal(t, []interface{}{"EMP001", "2024-05-01"}, stmt.Vars)
}
