package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-attendance/internal/auth"
	autherrors "go-attendance/internal/auth/errors"
	authMock "go-attendance/internal/auth/mock"
	"go-attendance/internal/config"
	"go-attendance/internal/domain"
	"go-attendance/internal/employee"
	employeeMock "go-attendance/internal/employee/mock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type fakeVerifier struct {
	email string
	err   error
}

func (f fakeVerifier) VerifyEmail(idToken string) (string, error) {
	return f.email, f.err
}

var fixedNow = time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)

type serviceDeps struct {
	repo      *authMock.MockRepository
	employees *employeeMock.MockRepository
	geo       *authMock.MockGeofenceChecker
}

func newService(t *testing.T, verifier auth.TokenVerifier, enforceGeofence bool) (auth.Service, *serviceDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	deps := &serviceDeps{
		repo:      authMock.NewMockRepository(ctrl),
		employees: employeeMock.NewMockRepository(ctrl),
		geo:       authMock.NewMockGeofenceChecker(ctrl),
	}
	svc := auth.NewService(deps.repo, deps.employees, verifier, deps.geo, auth.Options{
		JWTSecret:              testSecret,
		EnforceGeofenceOnLogin: enforceGeofence,
		Now:                    func() time.Time { return fixedNow },
	}, zap.NewNop())
	return svc, deps
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}, jwt.WithoutClaimsValidation())
	require.NoError(t, err)
	return claims
}

func activeEmployee() *employee.Employee {
	return &employee.Employee{
		ID:           uuid.New(),
		EmployeeCode: "EMP001",
		Name:         "John Doe",
		Email:        "john@company.com",
		IsActive:     true,
	}
}

func TestAuthService_SessionLogin(t *testing.T) {
	ctx := context.Background()
	lat, lon := 12.9040293, 77.5634288

	t.Run("employee success carries employee claims", func(t *testing.T) {
		svc, deps := newService(t, fakeVerifier{email: "john@company.com"}, false)
		empl := activeEmployee()
		deps.employees.EXPECT().FindByEmail(ctx, "john@company.com").Return(empl, nil)

		resp, err := svc.SessionLogin(ctx, auth.SessionLoginRequest{IDToken: "tok", UserType: "employee"})

		require.NoError(t, err)
		assert.Equal(t, domain.PrincipalEmployee, resp.Principal.Kind)
		assert.Equal(t, "EMP001", resp.Principal.EmployeeID)
		assert.Equal(t, fixedNow.Add(24*time.Hour).Unix(), resp.ExpiresAt)

		claims := parseClaims(t, resp.AccessToken)
		assert.Equal(t, empl.ID.String(), claims["principal_id"])
		assert.Equal(t, "employee", claims["principal_type"])
		assert.Equal(t, "EMP001", claims["employee_id"])
		assert.Equal(t, "John Doe", claims["name"])
	})

	t.Run("token rejected", func(t *testing.T) {
		svc, _ := newService(t, fakeVerifier{err: errors.New("bad signature")}, false)

		_, err := svc.SessionLogin(ctx, auth.SessionLoginRequest{IDToken: "tok", UserType: "employee"})
		assert.ErrorIs(t, err, autherrors.ErrNotAuthenticated)
	})

	t.Run("invalid user type", func(t *testing.T) {
		svc, _ := newService(t, fakeVerifier{email: "john@company.com"}, false)

		_, err := svc.SessionLogin(ctx, auth.SessionLoginRequest{IDToken: "tok", UserType: "manager"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidUserType)
	})

	t.Run("missing email", func(t *testing.T) {
		svc, _ := newService(t, fakeVerifier{}, false)

		_, err := svc.SessionLogin(ctx, auth.SessionLoginRequest{IDToken: "tok", UserType: "employee"})
		assert.ErrorIs(t, err, autherrors.ErrEmailMissing)
	})

	t.Run("outside office when enforced", func(t *testing.T) {
		svc, deps := newService(t, fakeVerifier{email: "john@company.com"}, true)
		deps.geo.EXPECT().IsWithinAnyOffice(&lat, &lon).Return(false, "")

		_, err := svc.SessionLogin(ctx, auth.SessionLoginRequest{IDToken: "tok", UserType: "employee", Latitude: &lat, Longitude: &lon})
		assert.ErrorIs(t, err, autherrors.ErrOutsideOffice)
	})

	t.Run("inside office when enforced", func(t *testing.T) {
		svc, deps := newService(t, fakeVerifier{email: "john@company.com"}, true)
		deps.geo.EXPECT().IsWithinAnyOffice(&lat, &lon).Return(true, "Home Office")
		deps.employees.EXPECT().FindByEmail(ctx, "john@company.com").Return(activeEmployee(), nil)

		_, err := svc.SessionLogin(ctx, auth.SessionLoginRequest{IDToken: "tok", UserType: "employee", Latitude: &lat, Longitude: &lon})
		assert.NoError(t, err)
	})

	t.Run("unmapped employee", func(t *testing.T) {
		svc, deps := newService(t, fakeVerifier{email: "ghost@company.com"}, false)
		deps.employees.EXPECT().FindByEmail(ctx, "ghost@company.com").Return(&employee.Employee{}, gorm.ErrRecordNotFound)

		_, err := svc.SessionLogin(ctx, auth.SessionLoginRequest{IDToken: "tok", UserType: "employee"})
		assert.ErrorIs(t, err, autherrors.ErrEmployeeNotRegistered)
	})

	t.Run("inactive employee", func(t *testing.T) {
		svc, deps := newService(t, fakeVerifier{email: "john@company.com"}, false)
		empl := activeEmployee()
		empl.IsActive = false
		deps.employees.EXPECT().FindByEmail(ctx, "john@company.com").Return(empl, nil)

		_, err := svc.SessionLogin(ctx, auth.SessionLoginRequest{IDToken: "tok", UserType: "employee"})
		assert.ErrorIs(t, err, autherrors.ErrEmployeeInactive)
	})

	t.Run("admin by email", func(t *testing.T) {
		svc, deps := newService(t, fakeVerifier{email: "boss@company.com"}, true)
		deps.repo.EXPECT().FindByUsername(ctx, "boss@company.com").Return(&auth.Admin{Username: "boss@company.com", Name: "Boss"}, nil)

		resp, err := svc.SessionLogin(ctx, auth.SessionLoginRequest{IDToken: "tok", UserType: "admin"})

		require.NoError(t, err)
		assert.Equal(t, domain.PrincipalAdmin, resp.Principal.Kind)
		assert.Empty(t, resp.Principal.EmployeeID)
	})

	t.Run("unmapped admin", func(t *testing.T) {
		svc, deps := newService(t, fakeVerifier{email: "boss@company.com"}, false)
		deps.repo.EXPECT().FindByUsername(ctx, "boss@company.com").Return(nil, nil)

		_, err := svc.SessionLogin(ctx, auth.SessionLoginRequest{IDToken: "tok", UserType: "admin"})
		assert.ErrorIs(t, err, autherrors.ErrAdminNotRegistered)
	})
}

func TestAuthService_AdminLogin(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	admin := &auth.Admin{Username: "admin", PasswordHash: string(hash), Name: "System Administrator"}

	t.Run("success", func(t *testing.T) {
		svc, deps := newService(t, fakeVerifier{}, false)
		deps.repo.EXPECT().FindByUsername(ctx, "admin").Return(admin, nil)

		resp, err := svc.AdminLogin(ctx, auth.AdminLoginRequest{Username: "admin", Password: "admin123"})

		require.NoError(t, err)
		claims := parseClaims(t, resp.AccessToken)
		assert.Equal(t, "admin", claims["principal_type"])
		assert.Equal(t, "admin", claims["principal_id"])
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, deps := newService(t, fakeVerifier{}, false)
		deps.repo.EXPECT().FindByUsername(ctx, "admin").Return(admin, nil)

		_, err := svc.AdminLogin(ctx, auth.AdminLoginRequest{Username: "admin", Password: "nope"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown admin", func(t *testing.T) {
		svc, deps := newService(t, fakeVerifier{}, false)
		deps.repo.EXPECT().FindByUsername(ctx, "root").Return(nil, nil)

		_, err := svc.AdminLogin(ctx, auth.AdminLoginRequest{Username: "root", Password: "x"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivated employee loses access", func(t *testing.T) {
		svc, deps := newService(t, fakeVerifier{}, false)
		empl := activeEmployee()
		empl.IsActive = false
		deps.employees.EXPECT().FindByID(ctx, empl.ID.String()).Return(empl, nil)

		_, err := svc.Me(ctx, domain.Principal{Kind: domain.PrincipalEmployee, ID: empl.ID.String(), EmployeeID: "EMP001"})
		assert.ErrorIs(t, err, autherrors.ErrEmployeeInactive)
	})

	t.Run("admin", func(t *testing.T) {
		svc, deps := newService(t, fakeVerifier{}, false)
		deps.repo.EXPECT().FindByUsername(ctx, "admin").Return(&auth.Admin{Username: "admin", Name: "System Administrator"}, nil)

		p, err := svc.Me(ctx, domain.Principal{Kind: domain.PrincipalAdmin, ID: "admin"})

		require.NoError(t, err)
		assert.Equal(t, "System Administrator", p.Name)
	})
}

func TestAuthService_Seed(t *testing.T) {
	ctx := context.Background()

	t.Run("creates default admin once", func(t *testing.T) {
		svc, deps := newService(t, fakeVerifier{}, false)
		deps.repo.EXPECT().FindByUsername(ctx, "admin").Return(nil, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, a *auth.Admin) error {
			assert.Equal(t, "System Administrator", a.Name)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("admin123")))
			return nil
		})

		err := svc.SeedDefaultAdmin(ctx, config.AdminSeed{Username: "admin", Password: "admin123", Name: "System Administrator"})
		assert.NoError(t, err)
	})

	t.Run("existing admin untouched", func(t *testing.T) {
		svc, deps := newService(t, fakeVerifier{}, false)
		deps.repo.EXPECT().FindByUsername(ctx, "admin").Return(&auth.Admin{Username: "admin"}, nil)

		err := svc.SeedDefaultAdmin(ctx, config.AdminSeed{Username: "admin", Password: "admin123"})
		assert.NoError(t, err)
	})

	t.Run("sample employees skip existing emails", func(t *testing.T) {
		svc, deps := newService(t, fakeVerifier{}, false)
		deps.employees.EXPECT().FindByEmail(ctx, "john@company.com").Return(activeEmployee(), nil)
		deps.employees.EXPECT().FindByEmail(ctx, gomock.Any()).Return(&employee.Employee{}, gorm.ErrRecordNotFound).Times(4)
		deps.employees.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
			assert.True(t, e.IsActive)
			assert.NotEqual(t, uuid.Nil, e.ID)
			return nil
		}).Times(4)

		assert.NoError(t, svc.SeedSampleEmployees(ctx))
	})
}
