package employees

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wtr-org/backoffice/internal/shared"
)

// Repository defines persistence operations for employees.
type Repository interface {
	List(ctx context.Context) ([]Employee, error)
	Get(ctx context.Context, id int64) (*Employee, error)
	Create(ctx context.Context, e Employee) (int64, error)
	Update(ctx context.Context, id int64, e Employee) error
	SetPassword(ctx context.Context, id int64, hash string, now time.Time) error
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

const employeeColumns = `id, id_card_number, first_name, last_name, start_date, end_date,
phone_number, address, role, COALESCE(password_hash, ''), is_active, created_at, created_by, updated_at, updated_by`

// List returns all active employees.
func (r *PGRepository) List(ctx context.Context) ([]Employee, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+employeeColumns+` FROM employees WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Get fetches one active employee.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Employee, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id=$1 AND is_active`, id)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Create inserts a new employee and returns its id.
func (r *PGRepository) Create(ctx context.Context, e Employee) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO employees
(id_card_number, first_name, last_name, start_date, end_date, phone_number, address, role, is_active, created_at, created_by)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,TRUE,$9,$10) RETURNING id`,
		e.IDCardNumber, e.FirstName, e.LastName, e.StartDate, e.EndDate,
		e.PhoneNumber, e.Address, e.Role, e.CreatedAt, e.CreatedBy).Scan(&id)
	return id, err
}

// Update rewrites the mutable fields of an active employee.
func (r *PGRepository) Update(ctx context.Context, id int64, e Employee) error {
	tag, err := r.pool.Exec(ctx, `UPDATE employees SET
id_card_number=$1, first_name=$2, last_name=$3, start_date=$4, end_date=$5,
phone_number=$6, address=$7, role=$8, updated_at=$9, updated_by=$10
WHERE id=$11 AND is_active`,
		e.IDCardNumber, e.FirstName, e.LastName, e.StartDate, e.EndDate,
		e.PhoneNumber, e.Address, e.Role, e.UpdatedAt, e.UpdatedBy, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SetPassword stores a new bcrypt hash for the employee.
func (r *PGRepository) SetPassword(ctx context.Context, id int64, hash string, now time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE employees SET password_hash=$1, updated_at=$2 WHERE id=$3 AND is_active`, hash, now, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SoftDelete marks the employee inactive.
func (r *PGRepository) SoftDelete(ctx context.Context, id int64, now time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE employees SET is_active=FALSE, updated_at=$1 WHERE id=$2 AND is_active`, now, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.IDCardNumber, &e.FirstName, &e.LastName, &e.StartDate, &e.EndDate,
		&e.PhoneNumber, &e.Address, &e.Role, &e.PasswordHash, &e.IsActive,
		&e.CreatedAt, &e.CreatedBy, &e.UpdatedAt, &e.UpdatedBy)
	return e, err
}

var _ Repository = (*PGRepository)(nil)
