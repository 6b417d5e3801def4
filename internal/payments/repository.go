package payments

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wtr-org/backoffice/internal/platform/httpx"
	"github.com/wtr-org/backoffice/internal/shared"
)

// Repository defines persistence operations for payment methods.
type Repository interface {
	List(ctx context.Context) ([]Method, error)
	Get(ctx context.Context, id int64) (*Method, error)
	GetByCode(ctx context.Context, code string) (*Method, error)
	Create(ctx context.Context, m Method) (int64, error)
	Update(ctx context.Context, id int64, m Method) error
	SoftDelete(ctx context.Context, id int64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const methodColumns = `id, method_name, method_code, is_active, created_at`

func (r *PGRepository) List(ctx context.Context) ([]Method, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+methodColumns+` FROM payment_methods WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Method
	for rows.Next() {
		m, err := scanMethod(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PGRepository) Get(ctx context.Context, id int64) (*Method, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+methodColumns+` FROM payment_methods WHERE id=$1 AND is_active`, id)
	m, err := scanMethod(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PGRepository) GetByCode(ctx context.Context, code string) (*Method, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+methodColumns+` FROM payment_methods WHERE method_code=$1 AND is_active`, code)
	m, err := scanMethod(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PGRepository) Create(ctx context.Context, m Method) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO payment_methods
(method_name, method_code, is_active, created_at)
VALUES ($1,$2,TRUE,$3) RETURNING id`,
		m.MethodName, m.MethodCode, m.CreatedAt).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, httpx.ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

func (r *PGRepository) Update(ctx context.Context, id int64, m Method) error {
	tag, err := r.pool.Exec(ctx, `UPDATE payment_methods SET method_name=$1, method_code=$2 WHERE id=$3 AND is_active`,
		m.MethodName, m.MethodCode, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return httpx.ErrDuplicate
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PGRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE payment_methods SET is_active=FALSE WHERE id=$1 AND is_active`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanMethod(row pgx.Row) (Method, error) {
	var m Method
	err := row.Scan(&m.ID, &m.MethodName, &m.MethodCode, &m.IsActive, &m.CreatedAt)
	return m, err
}

var _ Repository = (*PGRepository)(nil)
