package stocks

import "time"

// Stock is a warehouse line tracked separately from the sales catalog.
// Bills may draw quantities from stocks as well as products.
type Stock struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Unit        *string    `json:"unit,omitempty"`
	Amount      int        `json:"amount"`
	ImportPrice float64    `json:"import_price"`
	ExportPrice float64    `json:"export_price"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	CreatedBy   *int64     `json:"created_by,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	UpdatedBy   *int64     `json:"updated_by,omitempty"`
}

// StockForm carries create/update input.
type StockForm struct {
	Name        string  `json:"name" validate:"required,max=150"`
	Unit        *string `json:"unit" validate:"omitempty,max=50"`
	Amount      int     `json:"amount"`
	ImportPrice float64 `json:"import_price" validate:"gte=0"`
	ExportPrice float64 `json:"export_price" validate:"gte=0"`
}

// QuantityForm carries the absolute amount update.
type QuantityForm struct {
	Amount int `json:"amount" validate:"gte=0"`
}
