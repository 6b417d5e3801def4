package company

import (
	"context"
	"errors"

	"github.com/wtr-org/backoffice/internal/shared"
)

// Service wraps company profile operations.
type Service struct {
	repo  Repository
	clock shared.Clock
}

// NewService constructs a new Service.
func NewService(repo Repository, clock shared.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

func (s *Service) Current(ctx context.Context) (*Settings, error) {
	return s.repo.Current(ctx)
}

func (s *Service) Save(ctx context.Context, form SettingsForm) (*Settings, error) {
	now := s.clock.Now()
	return s.repo.Upsert(ctx, Settings{
		CompanyName:   form.CompanyName,
		Address:       form.Address,
		PhoneNumber:   form.PhoneNumber,
		MobileNumber:  form.MobileNumber,
		Email:         form.Email,
		TaxID:         form.TaxID,
		BankAccountNo: form.BankAccountNo,
		BankName:      form.BankName,
		LogoURL:       form.LogoURL,
		CreatedAt:     now,
		UpdatedAt:     &now,
	})
}

// SetupStatus reports whether the company profile has been filled in.
// A profile counts as configured once it has a name and an address.
func (s *Service) SetupStatus(ctx context.Context) (bool, error) {
	cur, err := s.repo.Current(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return cur.CompanyName != "" && cur.Address != nil && *cur.Address != "", nil
}
