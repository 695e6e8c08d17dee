package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "go-attendance/internal/auth/errors"
	"go-attendance/internal/config"
	"go-attendance/internal/domain"
	"go-attendance/internal/employee"
	"go-attendance/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultTokenTTL = 24 * time.Hour

type GeofenceChecker interface {
	IsWithinAnyOffice(lat, lon *float64) (bool, string)
}

type Options struct {
	JWTSecret              string
	TokenTTL               time.Duration
	EnforceGeofenceOnLogin bool
	Now                    func() time.Time
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	SessionLogin(ctx context.Context, req SessionLoginRequest) (SessionResponse, error)
	AdminLogin(ctx context.Context, req AdminLoginRequest) (SessionResponse, error)
	Me(ctx context.Context, principal domain.Principal) (domain.Principal, error)
	SeedDefaultAdmin(ctx context.Context, seed config.AdminSeed) error
	SeedSampleEmployees(ctx context.Context) error
}

type service struct {
	repo      Repository
	employees employee.Repository
	verifier  TokenVerifier
	geo       GeofenceChecker
	opts      Options
	logger    *zap.Logger
}

func NewService(
	repo Repository,
	employeeRepo employee.Repository,
	verifier TokenVerifier,
	geo GeofenceChecker,
	opts Options,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{
		repo:      repo,
		employees: employeeRepo,
		verifier:  verifier,
		geo:       geo,
		opts:      opts,
		logger:    l,
	}
}

func (s *service) SessionLogin(ctx context.Context, req SessionLoginRequest) (SessionResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	kind := domain.PrincipalKind(strings.ToLower(strings.TrimSpace(req.UserType)))
	if !kind.Valid() {
		return SessionResponse{}, autherrors.ErrInvalidUserType
	}

	email, err := s.verifier.VerifyEmail(req.IDToken)
	if err != nil {
		s.logger.Warn("session login token rejected", zap.String("request_id", rid), zap.Error(err))
		return SessionResponse{}, autherrors.ErrNotAuthenticated
	}
	if email == "" {
		return SessionResponse{}, autherrors.ErrEmailMissing
	}

	var principal domain.Principal
	switch kind {
	case domain.PrincipalEmployee:
		if s.opts.EnforceGeofenceOnLogin && s.geo != nil {
			if ok, _ := s.geo.IsWithinAnyOffice(req.Latitude, req.Longitude); !ok {
				s.logger.Info("session login outside office", zap.String("email", email))
				return SessionResponse{}, autherrors.ErrOutsideOffice
			}
		}
		principal, err = s.employeePrincipal(ctx, email)
	case domain.PrincipalAdmin:
		principal, err = s.adminPrincipal(ctx, email)
	}
	if err != nil {
		return SessionResponse{}, err
	}

	s.logger.Info("session login success",
		zap.String("request_id", rid),
		zap.String("principal_type", string(principal.Kind)),
		zap.String("principal_id", principal.ID),
	)
	return s.issue(principal)
}

func (s *service) AdminLogin(ctx context.Context, req AdminLoginRequest) (SessionResponse, error) {
	admin, err := s.repo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		s.logger.Error("admin lookup failed", zap.Error(err))
		return SessionResponse{}, err
	}
	if admin == nil {
		return SessionResponse{}, autherrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info("admin login bad password", zap.String("username", admin.Username))
		return SessionResponse{}, autherrors.ErrInvalidCredentials
	}

	return s.issue(domain.Principal{
		Kind: domain.PrincipalAdmin,
		ID:   admin.Username,
		Name: admin.Name,
	})
}

// Me re-reads the principal so deactivated employees and removed admins
// lose access before their token expires.
func (s *service) Me(ctx context.Context, principal domain.Principal) (domain.Principal, error) {
	switch principal.Kind {
	case domain.PrincipalEmployee:
		empl, err := s.employees.FindByID(ctx, principal.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.Principal{}, autherrors.ErrNotAuthenticated
			}
			return domain.Principal{}, err
		}
		if !empl.IsActive {
			return domain.Principal{}, autherrors.ErrEmployeeInactive
		}
		return domain.Principal{
			Kind:       domain.PrincipalEmployee,
			ID:         empl.ID.String(),
			EmployeeID: empl.EmployeeCode,
			Name:       empl.Name,
		}, nil
	case domain.PrincipalAdmin:
		admin, err := s.repo.FindByUsername(ctx, principal.ID)
		if err != nil {
			return domain.Principal{}, err
		}
		if admin == nil {
			return domain.Principal{}, autherrors.ErrNotAuthenticated
		}
		return domain.Principal{Kind: domain.PrincipalAdmin, ID: admin.Username, Name: admin.Name}, nil
	}
	return domain.Principal{}, autherrors.ErrNotAuthenticated
}

func (s *service) employeePrincipal(ctx context.Context, email string) (domain.Principal, error) {
	empl, err := s.employees.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Principal{}, autherrors.ErrEmployeeNotRegistered
	}
	if err != nil {
		s.logger.Error("employee lookup failed", zap.Error(err))
		return domain.Principal{}, err
	}
	if !empl.IsActive {
		return domain.Principal{}, autherrors.ErrEmployeeInactive
	}
	return domain.Principal{
		Kind:       domain.PrincipalEmployee,
		ID:         empl.ID.String(),
		EmployeeID: empl.EmployeeCode,
		Name:       empl.Name,
	}, nil
}

func (s *service) adminPrincipal(ctx context.Context, email string) (domain.Principal, error) {
	admin, err := s.repo.FindByUsername(ctx, email)
	if err != nil {
		s.logger.Error("admin lookup failed", zap.Error(err))
		return domain.Principal{}, err
	}
	if admin == nil {
		return domain.Principal{}, autherrors.ErrAdminNotRegistered
	}
	return domain.Principal{Kind: domain.PrincipalAdmin, ID: admin.Username, Name: admin.Name}, nil
}

func (s *service) issue(p domain.Principal) (SessionResponse, error) {
	expiresAt := s.opts.Now().Add(s.opts.TokenTTL)
	token, err := GenerateToken(s.opts.JWTSecret, p, expiresAt)
	if err != nil {
		s.logger.Error("sign token failed", zap.Error(err))
		return SessionResponse{}, autherrors.ErrTokenGenerationFailed
	}
	return SessionResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.Unix(),
		Principal:   p,
	}, nil
}

func GenerateToken(secret string, p domain.Principal, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"principal_id":   p.ID,
		"principal_type": string(p.Kind),
		"employee_id":    p.EmployeeID,
		"name":           p.Name,
		"exp":            expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
