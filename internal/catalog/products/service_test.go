package products

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wtr-org/backoffice/internal/shared"
)

type memoryRepo struct {
	byID   map[int64]*Product
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byID: make(map[int64]*Product)}
}

func (r *memoryRepo) List(ctx context.Context) ([]Product, error) {
	var out []Product
	for _, p := range r.byID {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListLowStock(ctx context.Context, threshold int) ([]Product, error) {
	var out []Product
	for _, p := range r.byID {
		if p.IsActive && p.Amount <= threshold {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (*Product, error) {
	p, ok := r.byID[id]
	if !ok || !p.IsActive {
		return nil, shared.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (r *memoryRepo) Create(ctx context.Context, p Product) (int64, error) {
	r.nextID++
	p.ID = r.nextID
	p.IsActive = true
	r.byID[p.ID] = &p
	return p.ID, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, p Product) error {
	cur, ok := r.byID[id]
	if !ok || !cur.IsActive {
		return shared.ErrNotFound
	}
	p.ID = id
	p.IsActive = true
	p.CreatedAt = cur.CreatedAt
	r.byID[id] = &p
	return nil
}

func (r *memoryRepo) SetAmount(ctx context.Context, id int64, amount int, now time.Time) error {
	p, ok := r.byID[id]
	if !ok || !p.IsActive {
		return shared.ErrNotFound
	}
	p.Amount = amount
	p.UpdatedAt = &now
	return nil
}

func (r *memoryRepo) SetPrices(ctx context.Context, id int64, normal, partner float64, now time.Time) error {
	p, ok := r.byID[id]
	if !ok || !p.IsActive {
		return shared.ErrNotFound
	}
	p.NormalPrice = normal
	p.PartnerPrice = partner
	p.UpdatedAt = &now
	return nil
}

func (r *memoryRepo) SoftDelete(ctx context.Context, id int64, now time.Time) error {
	p, ok := r.byID[id]
	if !ok || !p.IsActive {
		return shared.ErrNotFound
	}
	p.IsActive = false
	p.UpdatedAt = &now
	return nil
}

var _ Repository = (*memoryRepo)(nil)

func newTestService(repo *memoryRepo) *Service {
	return NewService(repo, shared.FixedClock{T: time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)})
}

func TestCreateAndGet(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, err := svc.Create(ctx, ProductForm{Name: "Widget", Amount: 5, NormalPrice: 9.99, PartnerPrice: 7.99}, 3)
	require.NoError(t, err)
	require.Equal(t, "Widget", p.Name)
	require.Equal(t, 5, p.Amount)
	require.NotNil(t, p.CreatedBy)
	require.Equal(t, int64(3), *p.CreatedBy)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ID)
}

func TestSetQuantityIsAbsolute(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, err := svc.Create(ctx, ProductForm{Name: "Widget", Amount: 5}, 0)
	require.NoError(t, err)

	updated, err := svc.SetQuantity(ctx, p.ID, 42)
	require.NoError(t, err)
	require.Equal(t, 42, updated.Amount)
}

func TestSetPricesOnlyTouchesPrices(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, err := svc.Create(ctx, ProductForm{Name: "Widget", Amount: 5, NormalPrice: 1, PartnerPrice: 1}, 0)
	require.NoError(t, err)

	updated, err := svc.SetPrices(ctx, p.ID, PricesForm{NormalPrice: 12.50, PartnerPrice: 10.00})
	require.NoError(t, err)
	require.Equal(t, 12.50, updated.NormalPrice)
	require.Equal(t, 10.00, updated.PartnerPrice)
	require.Equal(t, 5, updated.Amount)
}

func TestListLowStockDefaultsThreshold(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, ProductForm{Name: "Scarce", Amount: 2}, 0)
	require.NoError(t, err)
	_, err = svc.Create(ctx, ProductForm{Name: "Plenty", Amount: 500}, 0)
	require.NoError(t, err)

	low, err := svc.ListLowStock(ctx, 0)
	require.NoError(t, err)
	require.Len(t, low, 1)
	require.Equal(t, "Scarce", low[0].Name)
}

func TestSearchMatchesNameCaseInsensitive(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, ProductForm{Name: "Steel Widget"}, 0)
	require.NoError(t, err)
	_, err = svc.Create(ctx, ProductForm{Name: "Brass Gear"}, 0)
	require.NoError(t, err)

	out, err := svc.Search(ctx, "WIDGET")
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "Steel Widget", out[0].Name)

	none, err := svc.Search(ctx, "bolt")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestStatisticsSummarisesCatalog(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, ProductForm{Name: "Scarce", Amount: 2, NormalPrice: 10.00}, 0)
	require.NoError(t, err)
	_, err = svc.Create(ctx, ProductForm{Name: "Gone", Amount: 0, NormalPrice: 5.00}, 0)
	require.NoError(t, err)
	_, err = svc.Create(ctx, ProductForm{Name: "Plenty", Amount: 100, NormalPrice: 3.00}, 0)
	require.NoError(t, err)

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, stats.TotalProducts)
	require.Equal(t, 2, stats.LowStockProducts)
	require.Equal(t, 1, stats.OutOfStockProducts)
	require.Equal(t, 320.00, stats.TotalValue)
	require.Equal(t, 6.00, stats.AveragePrice)
}

func TestDeleteHidesProduct(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, err := svc.Create(ctx, ProductForm{Name: "Widget"}, 0)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.Get(ctx, p.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}
