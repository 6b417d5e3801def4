package payments

import "time"

// Method is a registered payment method. Codes are unique and stored
// uppercase so bills can reference them by code.
type Method struct {
	ID         int64     `json:"id"`
	MethodName string    `json:"method_name"`
	MethodCode string    `json:"method_code"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// MethodForm carries create/update input.
type MethodForm struct {
	MethodName string `json:"method_name" validate:"required,max=100"`
	MethodCode string `json:"method_code" validate:"required,max=30"`
}
