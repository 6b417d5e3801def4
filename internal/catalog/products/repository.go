package products

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wtr-org/backoffice/internal/shared"
)

// Repository defines persistence operations for products.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	ListLowStock(ctx context.Context, threshold int) ([]Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, p Product) (int64, error)
	Update(ctx context.Context, id int64, p Product) error
	SetAmount(ctx context.Context, id int64, amount int, now time.Time) error
	SetPrices(ctx context.Context, id int64, normal, partner float64, now time.Time) error
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

const productColumns = `id, name, unit, amount, normal_price, partner_price, is_active, created_at, created_by, updated_at, updated_by`

func (r *PGRepository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *PGRepository) ListLowStock(ctx context.Context, threshold int) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products WHERE is_active AND amount <= $1 ORDER BY amount, id`, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *PGRepository) Get(ctx context.Context, id int64) (*Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1 AND is_active`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) Create(ctx context.Context, p Product) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO products
(name, unit, amount, normal_price, partner_price, is_active, created_at, created_by)
VALUES ($1,$2,$3,$4,$5,TRUE,$6,$7) RETURNING id`,
		p.Name, p.Unit, p.Amount, p.NormalPrice, p.PartnerPrice, p.CreatedAt, p.CreatedBy).Scan(&id)
	return id, err
}

func (r *PGRepository) Update(ctx context.Context, id int64, p Product) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET
name=$1, unit=$2, amount=$3, normal_price=$4, partner_price=$5, updated_at=$6, updated_by=$7
WHERE id=$8 AND is_active`,
		p.Name, p.Unit, p.Amount, p.NormalPrice, p.PartnerPrice, p.UpdatedAt, p.UpdatedBy, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PGRepository) SetAmount(ctx context.Context, id int64, amount int, now time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET amount=$1, updated_at=$2 WHERE id=$3 AND is_active`, amount, now, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PGRepository) SetPrices(ctx context.Context, id int64, normal, partner float64, now time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET normal_price=$1, partner_price=$2, updated_at=$3 WHERE id=$4 AND is_active`, normal, partner, now, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PGRepository) SoftDelete(ctx context.Context, id int64, now time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET is_active=FALSE, updated_at=$1 WHERE id=$2 AND is_active`, now, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Unit, &p.Amount, &p.NormalPrice, &p.PartnerPrice,
		&p.IsActive, &p.CreatedAt, &p.CreatedBy, &p.UpdatedAt, &p.UpdatedBy)
	return p, err
}

var _ Repository = (*PGRepository)(nil)
