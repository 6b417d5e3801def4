package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/wtr-org/backoffice/internal/employees"
	"github.com/wtr-org/backoffice/internal/shared"
)

// ErrAlreadyRegistered is returned when signup targets an employee that
// already has a password.
var ErrAlreadyRegistered = errors.New("employee already registered")

// Service implements employee authentication on top of the employee store.
type Service struct {
	employees employees.Repository
	issuer    *TokenIssuer
	denylist  *Denylist
	clock     shared.Clock
}

// NewService constructs an auth Service.
func NewService(repo employees.Repository, issuer *TokenIssuer, denylist *Denylist, clock shared.Clock) *Service {
	return &Service{employees: repo, issuer: issuer, denylist: denylist, clock: clock}
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	emp, err := s.employees.Get(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}
	if emp.PasswordHash == "" {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	role := ""
	if emp.Role != nil {
		role = *emp.Role
	}
	token, claims, err := s.issuer.Issue(emp.ID, emp.FullName(), role)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{Token: token, ExpiresAt: claims.ExpiresAt.Time, Employee: emp}, nil
}

// Signup sets the initial password on an active employee that does not
// have one yet.
func (s *Service) Signup(ctx context.Context, req SignupRequest) error {
	emp, err := s.employees.Get(ctx, req.EmployeeID)
	if err != nil {
		return err
	}
	if emp.PasswordHash != "" {
		return ErrAlreadyRegistered
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.employees.SetPassword(ctx, emp.ID, string(hash), s.clock.Now())
}

// ChangePassword verifies the current password then stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, employeeID int64, req ChangePasswordRequest) error {
	emp, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return err
	}
	if emp.PasswordHash == "" {
		return shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return shared.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.employees.SetPassword(ctx, emp.ID, string(hash), s.clock.Now())
}

// Me returns the employee record behind an identity.
func (s *Service) Me(ctx context.Context, employeeID int64) (*employees.Employee, error) {
	return s.employees.Get(ctx, employeeID)
}

// Logout revokes the presented token until it expires on its own.
func (s *Service) Logout(ctx context.Context, claims *Claims) error {
	if s.denylist == nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time.Sub(s.clock.Now()))
}
