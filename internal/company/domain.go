package company

import "time"

// Settings is the single-row company profile printed on invoices.
type Settings struct {
	ID            int64      `json:"id"`
	CompanyName   string     `json:"company_name"`
	Address       *string    `json:"address,omitempty"`
	PhoneNumber   *string    `json:"phone_number,omitempty"`
	MobileNumber  *string    `json:"mobile_number,omitempty"`
	Email         *string    `json:"email,omitempty"`
	TaxID         *string    `json:"tax_id,omitempty"`
	BankAccountNo *string    `json:"bank_account_no,omitempty"`
	BankName      *string    `json:"bank_name,omitempty"`
	LogoURL       *string    `json:"logo_url,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// SettingsForm carries the upsert input.
type SettingsForm struct {
	CompanyName   string  `json:"company_name" validate:"required,max=200"`
	Address       *string `json:"address" validate:"omitempty,max=300"`
	PhoneNumber   *string `json:"phone_number" validate:"omitempty,max=30"`
	MobileNumber  *string `json:"mobile_number" validate:"omitempty,max=30"`
	Email         *string `json:"email" validate:"omitempty,email"`
	TaxID         *string `json:"tax_id" validate:"omitempty,max=50"`
	BankAccountNo *string `json:"bank_account_no" validate:"omitempty,max=50"`
	BankName      *string `json:"bank_name" validate:"omitempty,max=100"`
	LogoURL       *string `json:"logo_url" validate:"omitempty,url"`
}
