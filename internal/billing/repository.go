package billing

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wtr-org/backoffice/internal/platform/db"
	"github.com/wtr-org/backoffice/internal/shared"
)

// Repository defines persistence operations for bills.
type Repository interface {
	List(ctx context.Context) ([]Bill, error)
	Get(ctx context.Context, id int64) (*Bill, error)
	Create(ctx context.Context, bill *Bill, now time.Time) error
	SumItemTotals(ctx context.Context, billID int64) (float64, error)
	UpdateStatus(ctx context.Context, id int64, status string, now time.Time, updatedBy *int64) error
	UpdatePayment(ctx context.Context, id int64, form PaymentForm, now time.Time, updatedBy *int64) error
	UpdateVat(ctx context.Context, id int64, vatRate float64, t Totals, now time.Time, updatedBy *int64) error
	UpdatePeople(ctx context.Context, id int64, form PeopleForm, now time.Time, updatedBy *int64) error
	UpdateTotals(ctx context.Context, id int64, t Totals, now time.Time, updatedBy *int64) error
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

const billSelect = `SELECT
b.id, b.bill_type, b.employee_id, b.customer_id,
b.sub_total, b.vat_rate, b.vat_amount, b.grand_total, b.total_price,
b.bill_status, b.payment_status, b.payment_method, b.due_date, b.invoice_number,
b.approved_by, b.received_by, b.checked_by, b.delivery_by, b.payment_terms, b.remark,
b.is_active, b.created_at, b.created_by, b.updated_at, b.updated_by,
e.first_name || ' ' || e.last_name AS employee_name,
c.name AS customer_name,
a.first_name || ' ' || a.last_name AS approved_by_name
FROM bills b
LEFT JOIN employees e ON e.id = b.employee_id
LEFT JOIN customers c ON c.id = b.customer_id
LEFT JOIN employees a ON a.id = b.approved_by`

func (r *PGRepository) List(ctx context.Context) ([]Bill, error) {
	rows, err := r.pool.Query(ctx, billSelect+` WHERE b.is_active ORDER BY b.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PGRepository) Get(ctx context.Context, id int64) (*Bill, error) {
	row := r.pool.QueryRow(ctx, billSelect+` WHERE b.id = $1 AND b.is_active`, id)
	b, err := scanBill(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Items = items
	return &b, nil
}

func (r *PGRepository) listItems(ctx context.Context, billID int64) ([]BillItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT
bi.id, bi.bill_id, bi.stock_id, bi.product_id, bi.quantity, bi.price_per_unit, bi.total_price, bi.is_active, bi.created_at,
COALESCE(s.name, p.name) AS item_name
FROM bill_items bi
LEFT JOIN stocks s ON s.id = bi.stock_id
LEFT JOIN products p ON p.id = bi.product_id
WHERE bi.bill_id=$1 AND bi.is_active ORDER BY bi.id`, billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BillItem
	for rows.Next() {
		var it BillItem
		if err := rows.Scan(&it.ID, &it.BillID, &it.StockID, &it.ProductID, &it.Quantity,
			&it.PricePerUnit, &it.TotalPrice, &it.IsActive, &it.CreatedAt, &it.ItemName); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Create persists the bill, its items, and the quantity decrements in a
// single transaction. The invoice number is resolved inside the
// transaction when the caller did not supply one.
func (r *PGRepository) Create(ctx context.Context, bill *Bill, now time.Time) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if bill.InvoiceNumber == "" {
			prefix := invoicePrefix(now)
			var last string
			err := tx.QueryRow(ctx, `SELECT invoice_number FROM bills WHERE invoice_number LIKE $1 ORDER BY invoice_number DESC LIMIT 1`, prefix+"%").Scan(&last)
			if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return err
			}
			bill.InvoiceNumber = nextInvoiceNumber(prefix, last)
		}

		err := tx.QueryRow(ctx, `INSERT INTO bills
(bill_type, employee_id, customer_id, sub_total, vat_rate, vat_amount, grand_total, total_price,
 bill_status, payment_status, payment_method, due_date, invoice_number, payment_terms, remark,
 is_active, created_at, created_by)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,TRUE,$16,$17)
RETURNING id`,
			bill.BillType, bill.EmployeeID, bill.CustomerID,
			bill.SubTotal, bill.VatRate, bill.VatAmount, bill.GrandTotal, bill.TotalPrice,
			bill.BillStatus, bill.PaymentStatus, bill.PaymentMethod, bill.DueDate,
			bill.InvoiceNumber, bill.PaymentTerms, bill.Remark, bill.CreatedAt, bill.CreatedBy).Scan(&bill.ID)
		if err != nil {
			return err
		}

		for i := range bill.Items {
			it := &bill.Items[i]
			it.BillID = bill.ID
			err := tx.QueryRow(ctx, `INSERT INTO bill_items
(bill_id, stock_id, product_id, quantity, price_per_unit, total_price, is_active, created_at)
VALUES ($1,$2,$3,$4,$5,$6,TRUE,$7) RETURNING id`,
				it.BillID, it.StockID, it.ProductID, it.Quantity, it.PricePerUnit, it.TotalPrice, it.CreatedAt).Scan(&it.ID)
			if err != nil {
				return err
			}

			switch {
			case it.StockID != nil:
				if _, err := tx.Exec(ctx, `UPDATE stocks SET amount = amount - $1, updated_at=$2 WHERE id=$3`, it.Quantity, now, *it.StockID); err != nil {
					return err
				}
			case it.ProductID != nil:
				if _, err := tx.Exec(ctx, `UPDATE products SET amount = amount - $1, updated_at=$2 WHERE id=$3`, it.Quantity, now, *it.ProductID); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *PGRepository) SumItemTotals(ctx context.Context, billID int64) (float64, error) {
	var sum float64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(total_price), 0) FROM bill_items WHERE bill_id=$1 AND is_active`, billID).Scan(&sum)
	return sum, err
}

// UpdateStatus mirrors the status into payment_status. The payment
// update path below deliberately leaves bill_status alone.
func (r *PGRepository) UpdateStatus(ctx context.Context, id int64, status string, now time.Time, updatedBy *int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE bills SET bill_status=$1, payment_status=$1, updated_at=$2, updated_by=$3 WHERE id=$4 AND is_active`,
		status, now, updatedBy, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PGRepository) UpdatePayment(ctx context.Context, id int64, form PaymentForm, now time.Time, updatedBy *int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE bills SET payment_method=$1, payment_status=$2, due_date=$3, payment_terms=$4, updated_at=$5, updated_by=$6 WHERE id=$7 AND is_active`,
		form.PaymentMethod, form.PaymentStatus, form.DueDate, form.PaymentTerms, now, updatedBy, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PGRepository) UpdateVat(ctx context.Context, id int64, vatRate float64, t Totals, now time.Time, updatedBy *int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE bills SET vat_rate=$1, vat_amount=$2, grand_total=$3, updated_at=$4, updated_by=$5 WHERE id=$6 AND is_active`,
		vatRate, t.VatAmount, t.GrandTotal, now, updatedBy, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PGRepository) UpdatePeople(ctx context.Context, id int64, form PeopleForm, now time.Time, updatedBy *int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE bills SET approved_by=$1, received_by=$2, checked_by=$3, delivery_by=$4, updated_at=$5, updated_by=$6 WHERE id=$7 AND is_active`,
		form.ApprovedBy, form.ReceivedBy, form.CheckedBy, form.DeliveryBy, now, updatedBy, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PGRepository) UpdateTotals(ctx context.Context, id int64, t Totals, now time.Time, updatedBy *int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE bills SET sub_total=$1, total_price=$1, vat_amount=$2, grand_total=$3, updated_at=$4, updated_by=$5 WHERE id=$6 AND is_active`,
		t.SubTotal, t.VatAmount, t.GrandTotal, now, updatedBy, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SoftDelete hides the bill. Decremented quantities are not restored.
func (r *PGRepository) SoftDelete(ctx context.Context, id int64, now time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE bills SET is_active=FALSE, updated_at=$1 WHERE id=$2 AND is_active`, now, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanBill(row pgx.Row) (Bill, error) {
	var b Bill
	err := row.Scan(&b.ID, &b.BillType, &b.EmployeeID, &b.CustomerID,
		&b.SubTotal, &b.VatRate, &b.VatAmount, &b.GrandTotal, &b.TotalPrice,
		&b.BillStatus, &b.PaymentStatus, &b.PaymentMethod, &b.DueDate, &b.InvoiceNumber,
		&b.ApprovedBy, &b.ReceivedBy, &b.CheckedBy, &b.DeliveryBy, &b.PaymentTerms, &b.Remark,
		&b.IsActive, &b.CreatedAt, &b.CreatedBy, &b.UpdatedAt, &b.UpdatedBy,
		&b.EmployeeName, &b.CustomerName, &b.ApprovedByName)
	return b, err
}

var _ Repository = (*PGRepository)(nil)
