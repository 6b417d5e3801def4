package products

import "time"

// Product is a catalog item with an on-hand amount. The amount is
// decremented by bill creation and has no lower bound.
type Product struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Unit         *string    `json:"unit,omitempty"`
	Amount       int        `json:"amount"`
	NormalPrice  float64    `json:"normal_price"`
	PartnerPrice float64    `json:"partner_price"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	CreatedBy    *int64     `json:"created_by,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	UpdatedBy    *int64     `json:"updated_by,omitempty"`
}
