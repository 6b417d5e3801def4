package stocks

import (
	"context"
	"fmt"

	"github.com/wtr-org/backoffice/internal/shared"
)

const defaultLowStockThreshold = 10

// Service wraps stock business rules.
type Service struct {
	repo  Repository
	clock shared.Clock
}

// NewService constructs a new Service.
func NewService(repo Repository, clock shared.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

func (s *Service) List(ctx context.Context) ([]Stock, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListLowStock(ctx context.Context, threshold int) ([]Stock, error) {
	if threshold <= 0 {
		threshold = defaultLowStockThreshold
	}
	return s.repo.ListLowStock(ctx, threshold)
}

func (s *Service) Get(ctx context.Context, id int64) (*Stock, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, form StockForm, actorID int64) (*Stock, error) {
	st := Stock{
		Name:        form.Name,
		Unit:        form.Unit,
		Amount:      form.Amount,
		ImportPrice: form.ImportPrice,
		ExportPrice: form.ExportPrice,
		CreatedAt:   s.clock.Now(),
	}
	if actorID != 0 {
		st.CreatedBy = &actorID
	}
	id, err := s.repo.Create(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("create stock: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, form StockForm, actorID int64) (*Stock, error) {
	now := s.clock.Now()
	st := Stock{
		Name:        form.Name,
		Unit:        form.Unit,
		Amount:      form.Amount,
		ImportPrice: form.ImportPrice,
		ExportPrice: form.ExportPrice,
		UpdatedAt:   &now,
	}
	if actorID != 0 {
		st.UpdatedBy = &actorID
	}
	if err := s.repo.Update(ctx, id, st); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) SetQuantity(ctx context.Context, id int64, amount int) (*Stock, error) {
	if err := s.repo.SetAmount(ctx, id, amount, s.clock.Now()); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id, s.clock.Now())
}
