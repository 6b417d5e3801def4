package products

// ProductForm carries create/update input.
type ProductForm struct {
	Name         string  `json:"name" validate:"required,max=150"`
	Unit         *string `json:"unit" validate:"omitempty,max=50"`
	Amount       int     `json:"amount"`
	NormalPrice  float64 `json:"normal_price" validate:"gte=0"`
	PartnerPrice float64 `json:"partner_price" validate:"gte=0"`
}

// PricesForm carries the price-only update.
type PricesForm struct {
	NormalPrice  float64 `json:"normal_price" validate:"gte=0"`
	PartnerPrice float64 `json:"partner_price" validate:"gte=0"`
}

// QuantityForm carries the absolute amount update.
type QuantityForm struct {
	Amount int `json:"amount" validate:"gte=0"`
}

// Statistics is the catalog summary payload.
type Statistics struct {
	TotalProducts      int     `json:"total_products"`
	LowStockProducts   int     `json:"low_stock_products"`
	OutOfStockProducts int     `json:"out_of_stock_products"`
	TotalValue         float64 `json:"total_value"`
	AveragePrice       float64 `json:"average_price"`
}
