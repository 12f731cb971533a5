package domain

// CreateDenizen is the input for registering a denizen.
type CreateDenizen struct {
	Username string
	Email    *string
	Password string
}
