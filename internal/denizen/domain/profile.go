package domain

import "time"

// Profile holds the optional personal details of a denizen. A denizen has at
// most one profile row; it is created on the first profile update.
type Profile struct {
	ID        string
	DenizenID string
	FirstName *string
	LastName  *string
	Group     *string
	PowerMode bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileInfo is the read model joining a denizen with its profile and
// OAuth links.
type ProfileInfo struct {
	ID        string
	Username  string
	Email     *string
	OAuth     []OAuthLink
	FirstName *string
	LastName  *string
	Group     *string
	PowerMode bool
}

// ProfileUpdate lists the fields to change. Nil fields are left untouched.
type ProfileUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
	Group     *string
	PowerMode *bool
}

// IsEmpty reports whether the update changes nothing.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Email == nil && u.FirstName == nil && u.LastName == nil && u.Group == nil && u.PowerMode == nil
}
