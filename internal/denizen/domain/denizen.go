package domain

import "time"

// Denizen is a registered account.
type Denizen struct {
	ID           string
	Username     string
	Email        *string
	PasswordHash string // argon2 encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
