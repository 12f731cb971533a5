package profilesdk

// OAuthLink pairs an OAuth provider name with the denizen's id at that
// provider. UserID is nil when the denizen has not linked the provider.
type OAuthLink struct {
	Provider string  `json:"provider"`
	UserID   *string `json:"user_id"`
}

// ProfileInfo is the editable profile view of a denizen.
type ProfileInfo struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Email     *string     `json:"email,omitempty"`
	OAuth     []OAuthLink `json:"oauth,omitempty"`
	FirstName *string     `json:"first_name,omitempty"`
	LastName  *string     `json:"last_name,omitempty"`
	Group     *string     `json:"group,omitempty"`
	PowerMode bool        `json:"power_mode"`
}

// ProfileUpdateRequest carries only the fields to change; nil leaves a field as is.
type ProfileUpdateRequest struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Group     *string `json:"group,omitempty"`
	PowerMode *bool   `json:"power_mode,omitempty"`
}

type PasswordChangeRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type CreateDenizenRequest struct {
	Username string  `json:"username"`
	Email    *string `json:"email,omitempty"`
	Password string  `json:"password"`
}

type CreateDenizenResponse struct {
	ID string `json:"id"`
}

// DenizenResponse is the account record without credentials.
type DenizenResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email,omitempty"`
}

// ErrorResponse is the JSON error envelope returned by the service.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

type HealthChecks struct {
	Database string `json:"database"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
