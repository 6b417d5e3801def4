package employees

import "time"

// Employee represents a staff member able to own bills and log in.
type Employee struct {
	ID           int64      `json:"id"`
	IDCardNumber *string    `json:"id_card_number,omitempty"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	PhoneNumber  *string    `json:"phone_number,omitempty"`
	Address      *string    `json:"address,omitempty"`
	Role         *string    `json:"role,omitempty"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	CreatedBy    *int64     `json:"created_by,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	UpdatedBy    *int64     `json:"updated_by,omitempty"`
}

// FullName joins first and last name for display fields.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
