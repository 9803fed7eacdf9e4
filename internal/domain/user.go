package domain

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Valid reports whether r belongs to the closed set of roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

type User struct {
	ID            int32     `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	PhoneNumber   string    `json:"phone_number"`
	LicenseNumber string    `json:"license_number"`
	PasswordHash  string    `json:"-"`
	Role          Role      `json:"roles"`
	EmailVerified bool      `json:"email_verified"`
	CreatedOn     time.Time `json:"created_on"`
	UpdatedOn     time.Time `json:"updated_on"`
}
