package domain

import "time"

type OAuthProvider struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// OAuthProfile links a denizen to their account at an OAuth provider.
type OAuthProfile struct {
	ID          string
	DenizenID   string
	ProviderID  string
	OAuthUserID string
	CreatedAt   time.Time
}

// OAuthLink is the (provider name, provider user id) pair shown on a profile.
type OAuthLink struct {
	Provider string
	UserID   *string
}
