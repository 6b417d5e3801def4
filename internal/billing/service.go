package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wtr-org/backoffice/internal/shared"
)

// Service implements the bill workflow.
type Service struct {
	repo  Repository
	idem  *shared.IdempotencyStore
	clock shared.Clock
}

// NewService constructs a billing Service. The idempotency store may be
// nil; creation then skips the duplicate-submission check.
func NewService(repo Repository, idem *shared.IdempotencyStore, clock shared.Clock) *Service {
	return &Service{repo: repo, idem: idem, clock: clock}
}

func (s *Service) List(ctx context.Context) ([]Bill, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Bill, error) {
	return s.repo.Get(ctx, id)
}

// Create builds and persists a bill atomically. The bill, its items,
// and the stock or product decrements all commit together or not at
// all. Quantities may go negative; there is no floor.
func (s *Service) Create(ctx context.Context, req CreateBillRequest, actorID int64, idempotencyKey string) (*Bill, error) {
	if idempotencyKey != "" && s.idem != nil {
		if err := s.idem.CheckAndInsert(ctx, idempotencyKey, "bills"); err != nil {
			return nil, err
		}
	}

	bill, err := s.create(ctx, req, actorID)
	if err != nil && idempotencyKey != "" && s.idem != nil {
		// the submission failed, a retry with the same key must be allowed
		_ = s.idem.Delete(ctx, idempotencyKey)
	}
	return bill, err
}

func (s *Service) create(ctx context.Context, req CreateBillRequest, actorID int64) (*Bill, error) {
	now := s.clock.Now()

	totals := ComputeTotals(SumLineTotals(req.Items), req.VatRate)

	status := req.BillStatus
	if status == "" {
		status = StatusPending
	}
	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = StatusPending
	}
	method := req.PaymentMethod
	if method == "" {
		method = DefaultPaymentMethod
	}

	bill := Bill{
		BillType:      req.BillType,
		EmployeeID:    req.EmployeeID,
		CustomerID:    req.CustomerID,
		SubTotal:      totals.SubTotal,
		VatRate:       req.VatRate,
		VatAmount:     totals.VatAmount,
		GrandTotal:    totals.GrandTotal,
		TotalPrice:    totals.SubTotal,
		BillStatus:    status,
		PaymentStatus: paymentStatus,
		PaymentMethod: method,
		DueDate:       req.DueDate,
		InvoiceNumber: req.InvoiceNumber,
		PaymentTerms:  req.PaymentTerms,
		Remark:        req.Remark,
		CreatedAt:     now,
	}
	if actorID != 0 {
		bill.CreatedBy = &actorID
	}
	for _, it := range req.Items {
		bill.Items = append(bill.Items, BillItem{
			StockID:      it.StockID,
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			PricePerUnit: it.PricePerUnit,
			TotalPrice:   LineTotal(it.Quantity, it.PricePerUnit),
			CreatedAt:    now,
		})
	}

	if err := s.repo.Create(ctx, &bill, now); err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}
	return s.repo.Get(ctx, bill.ID)
}

// UpdateStatus sets the status and mirrors it into payment_status.
// Validating the value against the allow-list is the caller's job.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string, actorID int64) (*Bill, error) {
	if err := s.repo.UpdateStatus(ctx, id, status, s.clock.Now(), actorPtr(actorID)); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// UpdatePayment sets the payment fields. bill_status is untouched, so
// the two status columns can diverge depending on which path ran last.
func (s *Service) UpdatePayment(ctx context.Context, id int64, form PaymentForm, actorID int64) (*Bill, error) {
	if err := s.repo.UpdatePayment(ctx, id, form, s.clock.Now(), actorPtr(actorID)); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// UpdateVat recomputes vat_amount and grand_total from the stored
// subtotal, not from the live item sum.
func (s *Service) UpdateVat(ctx context.Context, id int64, form VatForm, actorID int64) (*Bill, error) {
	bill, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	totals := ComputeTotals(bill.SubTotal, form.VatRate)
	if err := s.repo.UpdateVat(ctx, id, form.VatRate, totals, s.clock.Now(), actorPtr(actorID)); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdatePeople(ctx context.Context, id int64, form PeopleForm, actorID int64) (*Bill, error) {
	if err := s.repo.UpdatePeople(ctx, id, form, s.clock.Now(), actorPtr(actorID)); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Recalculate re-derives the subtotal from the live item sum and then
// the dependent totals from the stored VAT rate. Running it twice in a
// row is a no-op.
func (s *Service) Recalculate(ctx context.Context, id int64, actorID int64) (*Bill, error) {
	bill, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sum, err := s.repo.SumItemTotals(ctx, id)
	if err != nil {
		return nil, err
	}
	totals := ComputeTotals(sum, bill.VatRate)
	if err := s.repo.UpdateTotals(ctx, id, totals, s.clock.Now(), actorPtr(actorID)); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id, s.clock.Now())
}

// Search filters the active bill set in memory, matching the read-side
// behaviour clients already depend on.
func (s *Service) Search(ctx context.Context, q SearchQuery) ([]Bill, error) {
	bills, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Bill, 0, len(bills))
	for _, b := range bills {
		if q.Invoice != "" && !strings.Contains(strings.ToLower(b.InvoiceNumber), strings.ToLower(q.Invoice)) {
			continue
		}
		if q.Customer != "" {
			name := ""
			if b.CustomerName != nil {
				name = *b.CustomerName
			}
			if !strings.Contains(strings.ToLower(name), strings.ToLower(q.Customer)) {
				continue
			}
		}
		if q.Status != "" && b.BillStatus != q.Status {
			continue
		}
		if q.EmployeeID != 0 && b.EmployeeID != q.EmployeeID {
			continue
		}
		if q.From != nil && b.CreatedAt.Before(*q.From) {
			continue
		}
		if q.To != nil && b.CreatedAt.After(*q.To) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// MonthlyStats aggregates the active bills of one calendar month.
// A zero year means the current month.
func (s *Service) MonthlyStats(ctx context.Context, year int, month time.Month) (*MonthlyStats, error) {
	if year == 0 {
		now := s.clock.Now()
		year, month = now.Year(), now.Month()
	}

	bills, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &MonthlyStats{
		Month:           fmt.Sprintf("%04d-%02d", year, int(month)),
		ByPaymentMethod: make(map[string]float64),
	}
	revenue := decimal.Zero
	byMethod := make(map[string]decimal.Decimal)
	for _, b := range bills {
		if b.CreatedAt.Year() != year || b.CreatedAt.Month() != month {
			continue
		}
		stats.BillCount++
		revenue = revenue.Add(decimal.NewFromFloat(b.GrandTotal))
		byMethod[b.PaymentMethod] = byMethod[b.PaymentMethod].Add(decimal.NewFromFloat(b.GrandTotal))
		switch b.BillStatus {
		case StatusPaid:
			stats.PaidCount++
		case StatusPending:
			stats.PendingCount++
		case StatusCancelled:
			stats.CancelledCount++
		}
	}

	stats.Revenue, _ = revenue.Round(2).Float64()
	if stats.BillCount > 0 {
		stats.AverageOrderValue, _ = revenue.Div(decimal.NewFromInt(int64(stats.BillCount))).Round(2).Float64()
	}
	for method, total := range byMethod {
		stats.ByPaymentMethod[method], _ = total.Round(2).Float64()
	}
	return stats, nil
}

// Overdue returns active bills past their due date whose payment status
// is not paid.
func (s *Service) Overdue(ctx context.Context) ([]Bill, error) {
	bills, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	out := make([]Bill, 0)
	for _, b := range bills {
		if b.DueDate == nil || !b.DueDate.Before(now) {
			continue
		}
		if b.PaymentStatus == StatusPaid {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func actorPtr(actorID int64) *int64 {
	if actorID == 0 {
		return nil
	}
	return &actorID
}
