package auth

import (
	"context"
	"errors"

	"go-attendance/internal/config"
	"go-attendance/internal/employee"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var sampleEmployees = []employee.Employee{
	{EmployeeCode: "EMP001", Name: "John Doe", Email: "john@company.com", Department: "IT"},
	{EmployeeCode: "EMP002", Name: "Jane Smith", Email: "jane@company.com", Department: "HR"},
	{EmployeeCode: "EMP003", Name: "Mike Johnson", Email: "mike@company.com", Department: "Sales"},
	{EmployeeCode: "EMP004", Name: "Sarah Wilson", Email: "sarah@company.com", Department: "Marketing"},
	{EmployeeCode: "EMP005", Name: "David Brown", Email: "david@company.com", Department: "Finance"},
}

// SeedDefaultAdmin creates the bootstrap admin when the username is free.
func (s *service) SeedDefaultAdmin(ctx context.Context, seed config.AdminSeed) error {
	existing, err := s.repo.FindByUsername(ctx, seed.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.Create(ctx, &Admin{
		Username:     seed.Username,
		PasswordHash: string(hash),
		Name:         seed.Name,
	}); err != nil {
		return err
	}

	s.logger.Info("default admin created", zap.String("username", seed.Username))
	return nil
}

// SeedSampleEmployees inserts the demo roster, skipping emails already present.
func (s *service) SeedSampleEmployees(ctx context.Context) error {
	for _, sample := range sampleEmployees {
		_, err := s.employees.FindByEmail(ctx, sample.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		empl := sample
		empl.ID = uuid.New()
		empl.IsActive = true
		if err := s.employees.Create(ctx, &empl); err != nil {
			return err
		}
		s.logger.Info("sample employee created", zap.String("employee_code", empl.EmployeeCode))
	}
	return nil
}
