package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wtr-org/backoffice/internal/shared"
)

type memoryRepo struct {
	bills      map[int64]*Bill
	items      map[int64][]BillItem
	stocks     map[int64]int
	products   map[int64]int
	nextBillID int64
	nextItemID int64
	failOnItem int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		bills:    make(map[int64]*Bill),
		items:    make(map[int64][]BillItem),
		stocks:   make(map[int64]int),
		products: make(map[int64]int),
	}
}

func (r *memoryRepo) List(ctx context.Context) ([]Bill, error) {
	var out []Bill
	for _, b := range r.bills {
		if b.IsActive {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (*Bill, error) {
	b, ok := r.bills[id]
	if !ok || !b.IsActive {
		return nil, shared.ErrNotFound
	}
	out := *b
	out.Items = append([]BillItem(nil), r.items[id]...)
	return &out, nil
}

func (r *memoryRepo) Create(ctx context.Context, bill *Bill, now time.Time) error {
	if bill.InvoiceNumber == "" {
		prefix := invoicePrefix(now)
		last := ""
		for _, b := range r.bills {
			if len(b.InvoiceNumber) >= len(prefix) && b.InvoiceNumber[:len(prefix)] == prefix && b.InvoiceNumber > last {
				last = b.InvoiceNumber
			}
		}
		bill.InvoiceNumber = nextInvoiceNumber(prefix, last)
	}

	// staged like a transaction: nothing is committed on failure
	stocks := make(map[int64]int, len(r.stocks))
	for k, v := range r.stocks {
		stocks[k] = v
	}
	products := make(map[int64]int, len(r.products))
	for k, v := range r.products {
		products[k] = v
	}
	items := make([]BillItem, 0, len(bill.Items))
	nextItem := r.nextItemID
	for i := range bill.Items {
		if r.failOnItem == i+1 {
			return errors.New("insert item failed")
		}
		it := bill.Items[i]
		nextItem++
		it.ID = nextItem
		it.IsActive = true
		switch {
		case it.StockID != nil:
			stocks[*it.StockID] -= it.Quantity
		case it.ProductID != nil:
			products[*it.ProductID] -= it.Quantity
		}
		items = append(items, it)
	}

	r.nextBillID++
	bill.ID = r.nextBillID
	r.nextItemID = nextItem
	stored := *bill
	stored.IsActive = true
	stored.Items = nil
	for i := range items {
		items[i].BillID = bill.ID
	}
	r.bills[bill.ID] = &stored
	r.items[bill.ID] = items
	r.stocks = stocks
	r.products = products
	return nil
}

func (r *memoryRepo) SumItemTotals(ctx context.Context, billID int64) (float64, error) {
	var sum float64
	for _, it := range r.items[billID] {
		if it.IsActive {
			sum += it.TotalPrice
		}
	}
	return sum, nil
}

func (r *memoryRepo) UpdateStatus(ctx context.Context, id int64, status string, now time.Time, updatedBy *int64) error {
	b, ok := r.bills[id]
	if !ok || !b.IsActive {
		return shared.ErrNotFound
	}
	b.BillStatus = status
	b.PaymentStatus = status
	b.UpdatedAt = &now
	return nil
}

func (r *memoryRepo) UpdatePayment(ctx context.Context, id int64, form PaymentForm, now time.Time, updatedBy *int64) error {
	b, ok := r.bills[id]
	if !ok || !b.IsActive {
		return shared.ErrNotFound
	}
	b.PaymentMethod = form.PaymentMethod
	b.PaymentStatus = form.PaymentStatus
	b.DueDate = form.DueDate
	b.PaymentTerms = form.PaymentTerms
	b.UpdatedAt = &now
	return nil
}

func (r *memoryRepo) UpdateVat(ctx context.Context, id int64, vatRate float64, t Totals, now time.Time, updatedBy *int64) error {
	b, ok := r.bills[id]
	if !ok || !b.IsActive {
		return shared.ErrNotFound
	}
	b.VatRate = vatRate
	b.VatAmount = t.VatAmount
	b.GrandTotal = t.GrandTotal
	b.UpdatedAt = &now
	return nil
}

func (r *memoryRepo) UpdatePeople(ctx context.Context, id int64, form PeopleForm, now time.Time, updatedBy *int64) error {
	b, ok := r.bills[id]
	if !ok || !b.IsActive {
		return shared.ErrNotFound
	}
	b.ApprovedBy = form.ApprovedBy
	b.ReceivedBy = form.ReceivedBy
	b.CheckedBy = form.CheckedBy
	b.DeliveryBy = form.DeliveryBy
	b.UpdatedAt = &now
	return nil
}

func (r *memoryRepo) UpdateTotals(ctx context.Context, id int64, t Totals, now time.Time, updatedBy *int64) error {
	b, ok := r.bills[id]
	if !ok || !b.IsActive {
		return shared.ErrNotFound
	}
	b.SubTotal = t.SubTotal
	b.TotalPrice = t.SubTotal
	b.VatAmount = t.VatAmount
	b.GrandTotal = t.GrandTotal
	b.UpdatedAt = &now
	return nil
}

func (r *memoryRepo) SoftDelete(ctx context.Context, id int64, now time.Time) error {
	b, ok := r.bills[id]
	if !ok || !b.IsActive {
		return shared.ErrNotFound
	}
	b.IsActive = false
	b.UpdatedAt = &now
	return nil
}

var _ Repository = (*memoryRepo)(nil)

func ptr[T any](v T) *T { return &v }

func testClock() shared.FixedClock {
	return shared.FixedClock{T: time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)}
}

func createRequest() CreateBillRequest {
	return CreateBillRequest{
		BillType:   "sale",
		EmployeeID: 1,
		CustomerID: 2,
		VatRate:    7,
		Items: []ItemInput{
			{StockID: ptr(int64(1)), Quantity: 3, PricePerUnit: 10.00},
		},
	}
}

func TestCreateBillComputesTotalsAndDecrementsStock(t *testing.T) {
	repo := newMemoryRepo()
	repo.stocks[1] = 10
	svc := NewService(repo, nil, testClock())
	ctx := context.Background()

	bill, err := svc.Create(ctx, createRequest(), 5, "")
	require.NoError(t, err)
	require.Equal(t, 30.00, bill.SubTotal)
	require.Equal(t, 2.10, bill.VatAmount)
	require.Equal(t, 32.10, bill.GrandTotal)
	require.Equal(t, 30.00, bill.TotalPrice)
	require.Equal(t, "INV-250100001", bill.InvoiceNumber)
	require.Equal(t, StatusPending, bill.BillStatus)
	require.Equal(t, StatusPending, bill.PaymentStatus)
	require.Equal(t, DefaultPaymentMethod, bill.PaymentMethod)
	require.Len(t, bill.Items, 1)
	require.Equal(t, 30.00, bill.Items[0].TotalPrice)
	require.Equal(t, 7, repo.stocks[1])
}

func TestCreateBillSequencesInvoiceNumbers(t *testing.T) {
	repo := newMemoryRepo()
	repo.stocks[1] = 100
	svc := NewService(repo, nil, testClock())
	ctx := context.Background()

	first, err := svc.Create(ctx, createRequest(), 0, "")
	require.NoError(t, err)
	second, err := svc.Create(ctx, createRequest(), 0, "")
	require.NoError(t, err)
	require.Equal(t, "INV-250100001", first.InvoiceNumber)
	require.Equal(t, "INV-250100002", second.InvoiceNumber)
}

func TestCreateBillDefaultsPaymentStatusIndependently(t *testing.T) {
	repo := newMemoryRepo()
	repo.stocks[1] = 10
	svc := NewService(repo, nil, testClock())

	req := createRequest()
	req.BillStatus = StatusPaid
	bill, err := svc.Create(context.Background(), req, 0, "")
	require.NoError(t, err)
	require.Equal(t, StatusPaid, bill.BillStatus)
	require.Equal(t, StatusPending, bill.PaymentStatus)
}

func TestCreateBillKeepsRemark(t *testing.T) {
	repo := newMemoryRepo()
	repo.stocks[1] = 10
	svc := NewService(repo, nil, testClock())

	req := createRequest()
	req.Remark = ptr("deliver before noon")
	bill, err := svc.Create(context.Background(), req, 0, "")
	require.NoError(t, err)
	require.NotNil(t, bill.Remark)
	require.Equal(t, "deliver before noon", *bill.Remark)
}

func TestCreateBillKeepsSuppliedInvoiceNumber(t *testing.T) {
	repo := newMemoryRepo()
	repo.stocks[1] = 100
	svc := NewService(repo, nil, testClock())

	req := createRequest()
	req.InvoiceNumber = "INV-CUSTOM-01"
	bill, err := svc.Create(context.Background(), req, 0, "")
	require.NoError(t, err)
	require.Equal(t, "INV-CUSTOM-01", bill.InvoiceNumber)
}

func TestCreateBillAllowsNegativeQuantity(t *testing.T) {
	repo := newMemoryRepo()
	repo.stocks[1] = 1
	svc := NewService(repo, nil, testClock())

	_, err := svc.Create(context.Background(), createRequest(), 0, "")
	require.NoError(t, err)
	require.Equal(t, -2, repo.stocks[1])
}

func TestCreateBillRollsBackOnItemFailure(t *testing.T) {
	repo := newMemoryRepo()
	repo.stocks[1] = 10
	repo.products[2] = 10
	repo.failOnItem = 2
	svc := NewService(repo, nil, testClock())

	req := createRequest()
	req.Items = append(req.Items, ItemInput{ProductID: ptr(int64(2)), Quantity: 4, PricePerUnit: 5.00})
	_, err := svc.Create(context.Background(), req, 0, "")
	require.Error(t, err)
	require.Empty(t, repo.bills)
	require.Equal(t, 10, repo.stocks[1])
	require.Equal(t, 10, repo.products[2])
}

func TestUpdateStatusMirrorsPaymentStatus(t *testing.T) {
	repo := newMemoryRepo()
	repo.stocks[1] = 10
	svc := NewService(repo, nil, testClock())
	ctx := context.Background()

	bill, err := svc.Create(ctx, createRequest(), 0, "")
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, bill.ID, StatusShipped, 0)
	require.NoError(t, err)
	require.Equal(t, StatusShipped, updated.BillStatus)
	require.Equal(t, StatusShipped, updated.PaymentStatus)
}

func TestUpdatePaymentDoesNotTouchBillStatus(t *testing.T) {
	repo := newMemoryRepo()
	repo.stocks[1] = 10
	svc := NewService(repo, nil, testClock())
	ctx := context.Background()

	bill, err := svc.Create(ctx, createRequest(), 0, "")
	require.NoError(t, err)

	due := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	updated, err := svc.UpdatePayment(ctx, bill.ID, PaymentForm{
		PaymentMethod: "TRANSFER",
		PaymentStatus: StatusPaid,
		DueDate:       &due,
	}, 0)
	require.NoError(t, err)
	require.Equal(t, StatusPending, updated.BillStatus)
	require.Equal(t, StatusPaid, updated.PaymentStatus)
	require.Equal(t, "TRANSFER", updated.PaymentMethod)
}

func TestUpdateVatUsesStoredSubtotal(t *testing.T) {
	repo := newMemoryRepo()
	repo.stocks[1] = 10
	svc := NewService(repo, nil, testClock())
	ctx := context.Background()

	bill, err := svc.Create(ctx, createRequest(), 0, "")
	require.NoError(t, err)

	// an out-of-band item edit leaves the stored subtotal stale
	repo.items[bill.ID][0].TotalPrice = 100.00

	updated, err := svc.UpdateVat(ctx, bill.ID, VatForm{VatRate: 10}, 0)
	require.NoError(t, err)
	require.Equal(t, 30.00, updated.SubTotal)
	require.Equal(t, 3.00, updated.VatAmount)
	require.Equal(t, 33.00, updated.GrandTotal)
}

func TestRecalculateRestoresInvariant(t *testing.T) {
	repo := newMemoryRepo()
	repo.stocks[1] = 10
	svc := NewService(repo, nil, testClock())
	ctx := context.Background()

	bill, err := svc.Create(ctx, createRequest(), 0, "")
	require.NoError(t, err)

	repo.items[bill.ID][0].TotalPrice = 100.00

	updated, err := svc.Recalculate(ctx, bill.ID, 0)
	require.NoError(t, err)
	require.Equal(t, 100.00, updated.SubTotal)
	require.Equal(t, 100.00, updated.TotalPrice)
	require.Equal(t, 7.00, updated.VatAmount)
	require.Equal(t, 107.00, updated.GrandTotal)

	again, err := svc.Recalculate(ctx, bill.ID, 0)
	require.NoError(t, err)
	require.Equal(t, updated.SubTotal, again.SubTotal)
	require.Equal(t, updated.GrandTotal, again.GrandTotal)
}

func TestSoftDeleteHidesBillAndKeepsQuantities(t *testing.T) {
	repo := newMemoryRepo()
	repo.stocks[1] = 10
	svc := NewService(repo, nil, testClock())
	ctx := context.Background()

	bill, err := svc.Create(ctx, createRequest(), 0, "")
	require.NoError(t, err)
	require.Equal(t, 7, repo.stocks[1])

	require.NoError(t, svc.Delete(ctx, bill.ID))

	_, err = svc.Get(ctx, bill.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
	require.Equal(t, 7, repo.stocks[1])

	require.ErrorIs(t, svc.Delete(ctx, bill.ID), shared.ErrNotFound)
}

func TestMutationsOnMissingBillReturnNotFound(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, testClock())
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, 99, StatusPaid, 0)
	require.ErrorIs(t, err, shared.ErrNotFound)
	_, err = svc.UpdateVat(ctx, 99, VatForm{VatRate: 5}, 0)
	require.ErrorIs(t, err, shared.ErrNotFound)
	_, err = svc.Recalculate(ctx, 99, 0)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSearchFilters(t *testing.T) {
	repo := newMemoryRepo()
	repo.stocks[1] = 100
	svc := NewService(repo, nil, testClock())
	ctx := context.Background()

	first, err := svc.Create(ctx, createRequest(), 0, "")
	require.NoError(t, err)
	second, err := svc.Create(ctx, createRequest(), 0, "")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, second.ID, StatusPaid, 0)
	require.NoError(t, err)

	byStatus, err := svc.Search(ctx, SearchQuery{Status: StatusPaid})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	require.Equal(t, second.ID, byStatus[0].ID)

	byInvoice, err := svc.Search(ctx, SearchQuery{Invoice: first.InvoiceNumber})
	require.NoError(t, err)
	require.Len(t, byInvoice, 1)
	require.Equal(t, first.ID, byInvoice[0].ID)

	none, err := svc.Search(ctx, SearchQuery{Invoice: "NOPE"})
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestMonthlyStatsDefaultsToCurrentMonth(t *testing.T) {
	repo := newMemoryRepo()
	repo.stocks[1] = 100
	svc := NewService(repo, nil, testClock())
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest(), 0, "")
	require.NoError(t, err)
	paid, err := svc.Create(ctx, createRequest(), 0, "")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, paid.ID, StatusPaid, 0)
	require.NoError(t, err)

	stats, err := svc.MonthlyStats(ctx, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "2025-01", stats.Month)
	require.Equal(t, 2, stats.BillCount)
	require.Equal(t, 64.20, stats.Revenue)
	require.Equal(t, 1, stats.PaidCount)
	require.Equal(t, 1, stats.PendingCount)
	require.Equal(t, 0, stats.CancelledCount)
	require.Equal(t, 32.10, stats.AverageOrderValue)
	require.Equal(t, 64.20, stats.ByPaymentMethod[DefaultPaymentMethod])
}

func TestMonthlyStatsEmptyMonth(t *testing.T) {
	repo := newMemoryRepo()
	repo.stocks[1] = 100
	svc := NewService(repo, nil, testClock())
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest(), 0, "")
	require.NoError(t, err)

	stats, err := svc.MonthlyStats(ctx, 2024, time.December)
	require.NoError(t, err)
	require.Equal(t, "2024-12", stats.Month)
	require.Equal(t, 0, stats.BillCount)
	require.Equal(t, 0.0, stats.Revenue)
	require.Equal(t, 0.0, stats.AverageOrderValue)
}

func TestOverdue(t *testing.T) {
	repo := newMemoryRepo()
	repo.stocks[1] = 100
	clock := testClock()
	svc := NewService(repo, nil, clock)
	ctx := context.Background()

	past := clock.T.AddDate(0, 0, -5)
	future := clock.T.AddDate(0, 0, 5)

	req := createRequest()
	req.DueDate = &past
	overdueBill, err := svc.Create(ctx, req, 0, "")
	require.NoError(t, err)

	req = createRequest()
	req.DueDate = &future
	_, err = svc.Create(ctx, req, 0, "")
	require.NoError(t, err)

	req = createRequest()
	req.DueDate = &past
	paid, err := svc.Create(ctx, req, 0, "")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, paid.ID, StatusPaid, 0)
	require.NoError(t, err)

	out, err := svc.Overdue(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, overdueBill.ID, out[0].ID)
}
