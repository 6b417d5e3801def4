package employees

import "time"

// EmployeeForm carries create/update input.
type EmployeeForm struct {
	IDCardNumber *string    `json:"id_card_number" validate:"omitempty,max=20"`
	FirstName    string     `json:"first_name" validate:"required,max=100"`
	LastName     string     `json:"last_name" validate:"required,max=100"`
	StartDate    time.Time  `json:"start_date" validate:"required"`
	EndDate      *time.Time `json:"end_date"`
	PhoneNumber  *string    `json:"phone_number" validate:"omitempty,max=20"`
	Address      *string    `json:"address" validate:"omitempty,max=255"`
	Role         *string    `json:"role" validate:"omitempty,max=50"`
}
