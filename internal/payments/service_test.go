package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wtr-org/backoffice/internal/platform/httpx"
	"github.com/wtr-org/backoffice/internal/shared"
)

type memoryRepo struct {
	byID   map[int64]*Method
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byID: make(map[int64]*Method)}
}

func (r *memoryRepo) List(ctx context.Context) ([]Method, error) {
	var out []Method
	for _, m := range r.byID {
		if m.IsActive {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (*Method, error) {
	m, ok := r.byID[id]
	if !ok || !m.IsActive {
		return nil, shared.ErrNotFound
	}
	out := *m
	return &out, nil
}

func (r *memoryRepo) GetByCode(ctx context.Context, code string) (*Method, error) {
	for _, m := range r.byID {
		if m.IsActive && m.MethodCode == code {
			out := *m
			return &out, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryRepo) Create(ctx context.Context, m Method) (int64, error) {
	for _, cur := range r.byID {
		if cur.IsActive && cur.MethodCode == m.MethodCode {
			return 0, httpx.ErrDuplicate
		}
	}
	r.nextID++
	m.ID = r.nextID
	m.IsActive = true
	r.byID[m.ID] = &m
	return m.ID, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, m Method) error {
	cur, ok := r.byID[id]
	if !ok || !cur.IsActive {
		return shared.ErrNotFound
	}
	cur.MethodName = m.MethodName
	cur.MethodCode = m.MethodCode
	return nil
}

func (r *memoryRepo) SoftDelete(ctx context.Context, id int64) error {
	m, ok := r.byID[id]
	if !ok || !m.IsActive {
		return shared.ErrNotFound
	}
	m.IsActive = false
	return nil
}

var _ Repository = (*memoryRepo)(nil)

func newTestService(repo *memoryRepo) *Service {
	return NewService(repo, shared.FixedClock{T: time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)})
}

func TestCreateUppercasesCode(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	m, err := svc.Create(context.Background(), MethodForm{MethodName: "PromptPay", MethodCode: " promptpay "})
	require.NoError(t, err)
	require.Equal(t, "PROMPTPAY", m.MethodCode)
}

func TestCreateRejectsDuplicateCode(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, MethodForm{MethodName: "Cash", MethodCode: "CASH"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, MethodForm{MethodName: "Cash Again", MethodCode: "cash"})
	require.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestSeedDefaultsSkipsExisting(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, MethodForm{MethodName: "Cash", MethodCode: "CASH"})
	require.NoError(t, err)

	created, err := svc.SeedDefaults(ctx)
	require.NoError(t, err)
	require.Len(t, created, len(DefaultMethods)-1)
	for _, m := range created {
		require.NotEqual(t, "CASH", m.MethodCode)
	}

	again, err := svc.SeedDefaults(ctx)
	require.NoError(t, err)
	require.Empty(t, again)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(DefaultMethods))
}
