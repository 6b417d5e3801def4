package employees

import (
	"context"
	"fmt"

	"github.com/wtr-org/backoffice/internal/shared"
)

// Service wraps employee business rules.
type Service struct {
	repo  Repository
	clock shared.Clock
}

// NewService constructs a new Service.
func NewService(repo Repository, clock shared.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

// List returns all active employees.
func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.repo.List(ctx)
}

// Get fetches one active employee.
func (s *Service) Get(ctx context.Context, id int64) (*Employee, error) {
	return s.repo.Get(ctx, id)
}

// Create registers a new employee record. Passwords are set later through
// the auth signup flow.
func (s *Service) Create(ctx context.Context, form EmployeeForm, actorID int64) (*Employee, error) {
	e := Employee{
		IDCardNumber: form.IDCardNumber,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		StartDate:    form.StartDate,
		EndDate:      form.EndDate,
		PhoneNumber:  form.PhoneNumber,
		Address:      form.Address,
		Role:         form.Role,
		CreatedAt:    s.clock.Now(),
	}
	if actorID != 0 {
		e.CreatedBy = &actorID
	}
	id, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Update rewrites an employee's profile fields.
func (s *Service) Update(ctx context.Context, id int64, form EmployeeForm, actorID int64) (*Employee, error) {
	now := s.clock.Now()
	e := Employee{
		IDCardNumber: form.IDCardNumber,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		StartDate:    form.StartDate,
		EndDate:      form.EndDate,
		PhoneNumber:  form.PhoneNumber,
		Address:      form.Address,
		Role:         form.Role,
		UpdatedAt:    &now,
	}
	if actorID != 0 {
		e.UpdatedBy = &actorID
	}
	if err := s.repo.Update(ctx, id, e); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Delete soft-deletes the employee.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id, s.clock.Now())
}
