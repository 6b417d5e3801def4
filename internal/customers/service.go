package customers

import (
	"context"
	"fmt"

	"github.com/wtr-org/backoffice/internal/shared"
)

// Service wraps customer business rules.
type Service struct {
	repo  Repository
	clock shared.Clock
}

// NewService constructs a new Service.
func NewService(repo Repository, clock shared.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

func (s *Service) List(ctx context.Context) ([]Customer, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, form CustomerForm, actorID int64) (*Customer, error) {
	c := Customer{
		Name:         form.Name,
		PhoneNumber:  form.PhoneNumber,
		Address:      form.Address,
		CustomerType: form.CustomerType,
		CreatedAt:    s.clock.Now(),
	}
	if actorID != 0 {
		c.CreatedBy = &actorID
	}
	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, form CustomerForm, actorID int64) (*Customer, error) {
	now := s.clock.Now()
	c := Customer{
		Name:         form.Name,
		PhoneNumber:  form.PhoneNumber,
		Address:      form.Address,
		CustomerType: form.CustomerType,
		UpdatedAt:    &now,
	}
	if actorID != 0 {
		c.UpdatedBy = &actorID
	}
	if err := s.repo.Update(ctx, id, c); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id, s.clock.Now())
}
