package profile

// OAuthLink is a read-only (provider, provider user id) pair.
type OAuthLink struct {
	Provider string
	UserID   *string
}

// ProfileRecord is the editable profile. ID and Username never change after load.
type ProfileRecord struct {
	ID        string
	Username  string
	Email     *string
	FirstName *string
	LastName  *string
	Group     *string
	OAuth     []OAuthLink
	PowerMode bool
}

func (p ProfileRecord) clone() ProfileRecord {
	out := p
	out.Email = clonePtr(p.Email)
	out.FirstName = clonePtr(p.FirstName)
	out.LastName = clonePtr(p.LastName)
	out.Group = clonePtr(p.Group)
	if p.OAuth != nil {
		out.OAuth = make([]OAuthLink, len(p.OAuth))
		for i, l := range p.OAuth {
			out.OAuth[i] = OAuthLink{Provider: l.Provider, UserID: clonePtr(l.UserID)}
		}
	}
	return out
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// PasswordChangeRecord holds the transient password form.
type PasswordChangeRecord struct {
	ID                 string
	OldPassword        string
	NewPassword        string
	NewPasswordConfirm string
}

// Deref returns the value of an optional field, or "" when unset.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
