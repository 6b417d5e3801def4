package payments

import (
	"context"
	"errors"
	"strings"

	"github.com/wtr-org/backoffice/internal/shared"
)

// DefaultMethods are registered by the seed endpoint when absent.
var DefaultMethods = []MethodForm{
	{MethodName: "Cash", MethodCode: "CASH"},
	{MethodName: "Bank Transfer", MethodCode: "TRANSFER"},
	{MethodName: "Cheque", MethodCode: "CHEQUE"},
	{MethodName: "Credit Card", MethodCode: "CREDIT_CARD"},
}

// Service wraps payment method business rules.
type Service struct {
	repo  Repository
	clock shared.Clock
}

// NewService constructs a new Service.
func NewService(repo Repository, clock shared.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

func (s *Service) List(ctx context.Context) ([]Method, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Method, error) {
	return s.repo.Get(ctx, id)
}

// GetByCode looks a method up by its code, case-insensitively.
func (s *Service) GetByCode(ctx context.Context, code string) (*Method, error) {
	return s.repo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

func (s *Service) Create(ctx context.Context, form MethodForm) (*Method, error) {
	m := Method{
		MethodName: form.MethodName,
		MethodCode: strings.ToUpper(strings.TrimSpace(form.MethodCode)),
		CreatedAt:  s.clock.Now(),
	}
	id, err := s.repo.Create(ctx, m)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, form MethodForm) (*Method, error) {
	m := Method{
		MethodName: form.MethodName,
		MethodCode: strings.ToUpper(strings.TrimSpace(form.MethodCode)),
	}
	if err := s.repo.Update(ctx, id, m); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id)
}

// SeedDefaults creates any of the built-in methods that are missing
// and returns the ones it created. Existing codes are left untouched.
func (s *Service) SeedDefaults(ctx context.Context) ([]Method, error) {
	created := make([]Method, 0, len(DefaultMethods))
	for _, form := range DefaultMethods {
		_, err := s.repo.GetByCode(ctx, form.MethodCode)
		if err == nil {
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		m, err := s.Create(ctx, form)
		if err != nil {
			return nil, err
		}
		created = append(created, *m)
	}
	return created, nil
}
