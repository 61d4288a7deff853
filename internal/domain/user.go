package domain

import "time"

// User is the domain model for platform accounts.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	TenantID     *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
