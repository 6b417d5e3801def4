package billing

import "time"

// Recognised bill statuses. Status updates must use one of these; the
// column itself is free text for compatibility with older rows.
const (
	StatusPending          = "pending"
	StatusPaid             = "paid"
	StatusCancelled        = "cancelled"
	StatusAwaitingShipment = "awaiting shipment"
	StatusShipped          = "shipped"
)

// DefaultPaymentMethod is applied when the caller leaves it blank.
const DefaultPaymentMethod = "CASH"

// ValidStatus reports whether s is in the status allow-list.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled, StatusAwaitingShipment, StatusShipped:
		return true
	}
	return false
}

// Bill is an invoice aggregating line items and financial totals.
// TotalPrice is a legacy column kept equal to SubTotal; older clients
// still read it.
type Bill struct {
	ID            int64      `json:"id"`
	BillType      string     `json:"bill_type"`
	EmployeeID    int64      `json:"employee_id"`
	CustomerID    int64      `json:"customer_id"`
	SubTotal      float64    `json:"sub_total"`
	VatRate       float64    `json:"vat_rate"`
	VatAmount     float64    `json:"vat_amount"`
	GrandTotal    float64    `json:"grand_total"`
	TotalPrice    float64    `json:"total_price"`
	BillStatus    string     `json:"bill_status"`
	PaymentStatus string     `json:"payment_status"`
	PaymentMethod string     `json:"payment_method"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	InvoiceNumber string     `json:"invoice_number"`
	ApprovedBy    *int64     `json:"approved_by,omitempty"`
	ReceivedBy    *string    `json:"received_by,omitempty"`
	CheckedBy     *string    `json:"checked_by,omitempty"`
	DeliveryBy    *string    `json:"delivery_by,omitempty"`
	PaymentTerms  *string    `json:"payment_terms,omitempty"`
	Remark        *string    `json:"remark,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	CreatedBy     *int64     `json:"created_by,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
	UpdatedBy     *int64     `json:"updated_by,omitempty"`

	EmployeeName   *string    `json:"employee_name,omitempty"`
	CustomerName   *string    `json:"customer_name,omitempty"`
	ApprovedByName *string    `json:"approved_by_name,omitempty"`
	Items          []BillItem `json:"items,omitempty"`
}

// BillItem is one line of a bill. Exactly one of StockID or ProductID
// is expected to be set; nothing enforces the exclusivity.
type BillItem struct {
	ID           int64     `json:"id"`
	BillID       int64     `json:"bill_id"`
	StockID      *int64    `json:"stock_id,omitempty"`
	ProductID    *int64    `json:"product_id,omitempty"`
	Quantity     int       `json:"quantity"`
	PricePerUnit float64   `json:"price_per_unit"`
	TotalPrice   float64   `json:"total_price"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`

	ItemName *string `json:"item_name,omitempty"`
}
