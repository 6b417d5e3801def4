package billing

import "time"

// ItemInput is one requested line item.
type ItemInput struct {
	StockID      *int64  `json:"stock_id" validate:"omitempty,gt=0"`
	ProductID    *int64  `json:"product_id" validate:"omitempty,gt=0"`
	Quantity     int     `json:"quantity" validate:"required,gt=0"`
	PricePerUnit float64 `json:"price_per_unit" validate:"required,gt=0"`
}

// CreateBillRequest is the bill creation payload.
type CreateBillRequest struct {
	BillType      string      `json:"bill_type" validate:"required,max=100"`
	EmployeeID    int64       `json:"employee_id" validate:"required,gt=0"`
	CustomerID    int64       `json:"customer_id" validate:"required,gt=0"`
	VatRate       float64     `json:"vat_rate" validate:"gte=0,lte=100"`
	BillStatus    string      `json:"bill_status" validate:"omitempty,max=50"`
	PaymentStatus string      `json:"payment_status" validate:"omitempty,max=50"`
	PaymentMethod string      `json:"payment_method" validate:"omitempty,max=30"`
	DueDate       *time.Time  `json:"due_date"`
	InvoiceNumber string      `json:"invoice_number" validate:"omitempty,max=30"`
	PaymentTerms  *string     `json:"payment_terms" validate:"omitempty,max=200"`
	Remark        *string     `json:"remark" validate:"omitempty,max=500"`
	Items         []ItemInput `json:"items" validate:"required,min=1,dive"`
}

// PaymentForm updates payment fields without touching the bill status.
type PaymentForm struct {
	PaymentMethod string     `json:"payment_method" validate:"required,max=30"`
	PaymentStatus string     `json:"payment_status" validate:"required,max=50"`
	DueDate       *time.Time `json:"due_date"`
	PaymentTerms  *string    `json:"payment_terms" validate:"omitempty,max=200"`
}

// VatForm updates the VAT rate.
type VatForm struct {
	VatRate float64 `json:"vat_rate" validate:"gte=0,lte=100"`
}

// PeopleForm updates the approver and hand-off fields.
type PeopleForm struct {
	ApprovedBy *int64  `json:"approved_by" validate:"omitempty,gt=0"`
	ReceivedBy *string `json:"received_by" validate:"omitempty,max=100"`
	CheckedBy  *string `json:"checked_by" validate:"omitempty,max=100"`
	DeliveryBy *string `json:"delivery_by" validate:"omitempty,max=100"`
}

// SearchQuery filters the active bill set in memory.
type SearchQuery struct {
	Invoice    string
	Customer   string
	Status     string
	EmployeeID int64
	From       *time.Time
	To         *time.Time
}

// MonthlyStats aggregates the active bills of one calendar month.
type MonthlyStats struct {
	Month             string             `json:"month"`
	BillCount         int                `json:"bill_count"`
	Revenue           float64            `json:"revenue"`
	PaidCount         int                `json:"paid_count"`
	PendingCount      int                `json:"pending_count"`
	CancelledCount    int                `json:"cancelled_count"`
	AverageOrderValue float64            `json:"average_order_value"`
	ByPaymentMethod   map[string]float64 `json:"by_payment_method"`
}
