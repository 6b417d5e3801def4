package company

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wtr-org/backoffice/internal/shared"
)

// Repository defines persistence for the company profile.
type Repository interface {
	Current(ctx context.Context) (*Settings, error)
	Upsert(ctx context.Context, s Settings) (*Settings, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const settingsColumns = `id, company_name, address, phone_number, mobile_number, email, tax_id, bank_account_no, bank_name, logo_url, created_at, updated_at`

// Current returns the latest settings row.
func (r *PGRepository) Current(ctx context.Context) (*Settings, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+settingsColumns+` FROM company_settings ORDER BY id DESC LIMIT 1`)
	s, err := scanSettings(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Upsert updates the existing row or inserts the first one.
func (r *PGRepository) Upsert(ctx context.Context, s Settings) (*Settings, error) {
	existing, err := r.Current(ctx)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if existing == nil {
		row := r.pool.QueryRow(ctx, `INSERT INTO company_settings
(company_name, address, phone_number, mobile_number, email, tax_id, bank_account_no, bank_name, logo_url, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING `+settingsColumns,
			s.CompanyName, s.Address, s.PhoneNumber, s.MobileNumber, s.Email,
			s.TaxID, s.BankAccountNo, s.BankName, s.LogoURL, s.CreatedAt)
		out, err := scanSettings(row)
		if err != nil {
			return nil, err
		}
		return &out, nil
	}

	now := time.Now()
	if s.UpdatedAt != nil {
		now = *s.UpdatedAt
	}
	row := r.pool.QueryRow(ctx, `UPDATE company_settings SET
company_name=$1, address=$2, phone_number=$3, mobile_number=$4, email=$5,
tax_id=$6, bank_account_no=$7, bank_name=$8, logo_url=$9, updated_at=$10
WHERE id=$11
RETURNING `+settingsColumns,
		s.CompanyName, s.Address, s.PhoneNumber, s.MobileNumber, s.Email,
		s.TaxID, s.BankAccountNo, s.BankName, s.LogoURL, now, existing.ID)
	out, err := scanSettings(row)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanSettings(row pgx.Row) (Settings, error) {
	var s Settings
	err := row.Scan(&s.ID, &s.CompanyName, &s.Address, &s.PhoneNumber, &s.MobileNumber,
		&s.Email, &s.TaxID, &s.BankAccountNo, &s.BankName, &s.LogoURL, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

var _ Repository = (*PGRepository)(nil)
