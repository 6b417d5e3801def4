package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wtr-org/backoffice/internal/shared"
)

// DefaultLowStockThreshold is used when the caller does not supply one.
const DefaultLowStockThreshold = 10

// Service wraps product business rules.
type Service struct {
	repo  Repository
	clock shared.Clock
}

// NewService constructs a new Service.
func NewService(repo Repository, clock shared.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

// ListLowStock returns active products at or below the threshold.
func (s *Service) ListLowStock(ctx context.Context, threshold int) ([]Product, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return s.repo.ListLowStock(ctx, threshold)
}

func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, form ProductForm, actorID int64) (*Product, error) {
	p := Product{
		Name:         form.Name,
		Unit:         form.Unit,
		Amount:       form.Amount,
		NormalPrice:  form.NormalPrice,
		PartnerPrice: form.PartnerPrice,
		CreatedAt:    s.clock.Now(),
	}
	if actorID != 0 {
		p.CreatedBy = &actorID
	}
	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, form ProductForm, actorID int64) (*Product, error) {
	now := s.clock.Now()
	p := Product{
		Name:         form.Name,
		Unit:         form.Unit,
		Amount:       form.Amount,
		NormalPrice:  form.NormalPrice,
		PartnerPrice: form.PartnerPrice,
		UpdatedAt:    &now,
	}
	if actorID != 0 {
		p.UpdatedBy = &actorID
	}
	if err := s.repo.Update(ctx, id, p); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// SetQuantity replaces the on-hand amount with an absolute value.
func (s *Service) SetQuantity(ctx context.Context, id int64, amount int) (*Product, error) {
	if err := s.repo.SetAmount(ctx, id, amount, s.clock.Now()); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// SetPrices updates the two price fields only.
func (s *Service) SetPrices(ctx context.Context, id int64, form PricesForm) (*Product, error) {
	if err := s.repo.SetPrices(ctx, id, form.NormalPrice, form.PartnerPrice, s.clock.Now()); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id, s.clock.Now())
}

// Search returns active products whose name contains the keyword,
// case-insensitively.
func (s *Service) Search(ctx context.Context, keyword string) ([]Product, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	keyword = strings.ToLower(keyword)
	out := make([]Product, 0)
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), keyword) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Statistics summarises the active catalog: counts plus the total
// on-hand value at the normal price.
func (s *Service) Statistics(ctx context.Context) (*Statistics, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{TotalProducts: len(all)}
	value := decimal.Zero
	priceSum := decimal.Zero
	for _, p := range all {
		if p.Amount <= DefaultLowStockThreshold {
			stats.LowStockProducts++
		}
		if p.Amount <= 0 {
			stats.OutOfStockProducts++
		}
		value = value.Add(decimal.NewFromFloat(p.NormalPrice).Mul(decimal.NewFromInt(int64(p.Amount))))
		priceSum = priceSum.Add(decimal.NewFromFloat(p.NormalPrice))
	}

	stats.TotalValue, _ = value.Round(2).Float64()
	if len(all) > 0 {
		stats.AveragePrice, _ = priceSum.Div(decimal.NewFromInt(int64(len(all)))).Round(2).Float64()
	}
	return stats, nil
}
