package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-portal/internal/auth"
	"github.com/spec-kit/hr-portal/internal/config"
	"github.com/spec-kit/hr-portal/internal/domain"
	"github.com/spec-kit/hr-portal/internal/repository"
	apperrors "github.com/spec-kit/hr-portal/pkg/util/errorutil"
)

// AuthService coordinates login and the first-run administrator.
type AuthService struct {
	employees  repository.EmployeeRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	Logger       *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		employees:  deps.EmployeeRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     logger,
	}
}

// Login authenticates an employee by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Employee, string, time.Time, error) {
	employee, err := s.employees.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(employee.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if employee.Status == domain.EmployeeStatusInactive {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("employee inactive")
	}
	token, exp, err := s.tokenMgr.GenerateToken(employee.ID, employee.Roles)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return employee, token, exp, nil
}

// BootstrapAdmin creates the seed administrator when the directory is empty.
// It reports whether an account was created.
func (s *AuthService) BootstrapAdmin(ctx context.Context, seed config.SeedConfig) (bool, error) {
	if !seed.Enabled() {
		return false, nil
	}
	count, err := s.employees.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := auth.HashPassword(seed.AdminPassword, s.bcryptCost)
	if err != nil {
		return false, err
	}
	admin := &domain.Employee{
		FirstName:    seed.AdminFirstName,
		LastName:     seed.AdminLastName,
		Email:        seed.AdminEmail,
		Roles:        []domain.Role{domain.RoleAdmin},
		Status:       domain.EmployeeStatusActive,
		PasswordHash: hash,
	}
	if err := s.employees.Create(ctx, admin); err != nil {
		return false, err
	}
	s.logger.Info("bootstrap administrator created", zap.String("employee_id", admin.ID), zap.String("email", admin.Email))
	return true, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
