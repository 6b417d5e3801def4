package company

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wtr-org/backoffice/internal/shared"
)

type memoryRepo struct {
	current *Settings
}

func (r *memoryRepo) Current(ctx context.Context) (*Settings, error) {
	if r.current == nil {
		return nil, shared.ErrNotFound
	}
	out := *r.current
	return &out, nil
}

func (r *memoryRepo) Upsert(ctx context.Context, s Settings) (*Settings, error) {
	if r.current == nil {
		s.ID = 1
	} else {
		s.ID = r.current.ID
		s.CreatedAt = r.current.CreatedAt
	}
	r.current = &s
	out := s
	return &out, nil
}

var _ Repository = (*memoryRepo)(nil)

func newTestService(repo *memoryRepo) *Service {
	return NewService(repo, shared.FixedClock{T: time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)})
}

func strPtr(s string) *string { return &s }

func TestSetupStatusBeforeAnySave(t *testing.T) {
	svc := newTestService(&memoryRepo{})

	configured, err := svc.SetupStatus(context.Background())
	require.NoError(t, err)
	require.False(t, configured)
}

func TestSetupStatusRequiresNameAndAddress(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Save(ctx, SettingsForm{CompanyName: "WTR Co"})
	require.NoError(t, err)
	configured, err := svc.SetupStatus(ctx)
	require.NoError(t, err)
	require.False(t, configured)

	_, err = svc.Save(ctx, SettingsForm{CompanyName: "WTR Co", Address: strPtr("1 Main St")})
	require.NoError(t, err)
	configured, err = svc.SetupStatus(ctx)
	require.NoError(t, err)
	require.True(t, configured)
}

func TestSaveReplacesExistingProfile(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.Save(ctx, SettingsForm{CompanyName: "WTR Co"})
	require.NoError(t, err)

	second, err := svc.Save(ctx, SettingsForm{CompanyName: "WTR Organization"})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "WTR Organization", second.CompanyName)
}
