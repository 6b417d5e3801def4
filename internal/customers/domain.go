package customers

import "time"

// Customer is a billing counterparty.
type Customer struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	PhoneNumber  *string    `json:"phone_number,omitempty"`
	Address      *string    `json:"address,omitempty"`
	CustomerType *string    `json:"customer_type,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	CreatedBy    *int64     `json:"created_by,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	UpdatedBy    *int64     `json:"updated_by,omitempty"`
}

// CustomerForm carries create/update input.
type CustomerForm struct {
	Name         string  `json:"name" validate:"required,max=150"`
	PhoneNumber  *string `json:"phone_number" validate:"omitempty,max=20"`
	Address      *string `json:"address" validate:"omitempty,max=255"`
	CustomerType *string `json:"customer_type" validate:"omitempty,max=50"`
}
