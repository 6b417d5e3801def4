package stocks

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wtr-org/backoffice/internal/shared"
)

// Repository defines persistence operations for stocks.
type Repository interface {
	List(ctx context.Context) ([]Stock, error)
	ListLowStock(ctx context.Context, threshold int) ([]Stock, error)
	Get(ctx context.Context, id int64) (*Stock, error)
	Create(ctx context.Context, s Stock) (int64, error)
	Update(ctx context.Context, id int64, s Stock) error
	SetAmount(ctx context.Context, id int64, amount int, now time.Time) error
	SoftDelete(ctx context.Context, id int64, now time.Time) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const stockColumns = `id, name, unit, amount, import_price, export_price, is_active, created_at, created_by, updated_at, updated_by`

func (r *PGRepository) List(ctx context.Context) ([]Stock, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+stockColumns+` FROM stocks WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStocks(rows)
}

func (r *PGRepository) ListLowStock(ctx context.Context, threshold int) ([]Stock, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+stockColumns+` FROM stocks WHERE is_active AND amount <= $1 ORDER BY amount, id`, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStocks(rows)
}

func (r *PGRepository) Get(ctx context.Context, id int64) (*Stock, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+stockColumns+` FROM stocks WHERE id=$1 AND is_active`, id)
	s, err := scanStock(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGRepository) Create(ctx context.Context, s Stock) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO stocks
(name, unit, amount, import_price, export_price, is_active, created_at, created_by)
VALUES ($1,$2,$3,$4,$5,TRUE,$6,$7) RETURNING id`,
		s.Name, s.Unit, s.Amount, s.ImportPrice, s.ExportPrice, s.CreatedAt, s.CreatedBy).Scan(&id)
	return id, err
}

func (r *PGRepository) Update(ctx context.Context, id int64, s Stock) error {
	tag, err := r.pool.Exec(ctx, `UPDATE stocks SET
name=$1, unit=$2, amount=$3, import_price=$4, export_price=$5, updated_at=$6, updated_by=$7
WHERE id=$8 AND is_active`,
		s.Name, s.Unit, s.Amount, s.ImportPrice, s.ExportPrice, s.UpdatedAt, s.UpdatedBy, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PGRepository) SetAmount(ctx context.Context, id int64, amount int, now time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE stocks SET amount=$1, updated_at=$2 WHERE id=$3 AND is_active`, amount, now, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PGRepository) SoftDelete(ctx context.Context, id int64, now time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE stocks SET is_active=FALSE, updated_at=$1 WHERE id=$2 AND is_active`, now, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func collectStocks(rows pgx.Rows) ([]Stock, error) {
	var out []Stock
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanStock(row pgx.Row) (Stock, error) {
	var s Stock
	err := row.Scan(&s.ID, &s.Name, &s.Unit, &s.Amount, &s.ImportPrice, &s.ExportPrice,
		&s.IsActive, &s.CreatedAt, &s.CreatedBy, &s.UpdatedAt, &s.UpdatedBy)
	return s, err
}

var _ Repository = (*PGRepository)(nil)
