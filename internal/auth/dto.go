package auth

import (
	"time"

	"github.com/wtr-org/backoffice/internal/employees"
)

// LoginRequest authenticates an employee by ID and password.
type LoginRequest struct {
	EmployeeID int64  `json:"employee_id" validate:"required,gt=0"`
	Password   string `json:"password" validate:"required,min=6"`
}

// SignupRequest sets the initial password on an existing employee.
type SignupRequest struct {
	EmployeeID int64  `json:"employee_id" validate:"required,gt=0"`
	Password   string `json:"password" validate:"required,min=6"`
}

// ChangePasswordRequest rotates the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expires_at"`
	Employee  *employees.Employee `json:"employee"`
}
