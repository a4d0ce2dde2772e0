package domain

// Session is the request-scoped identity read from the bearer token.
// Token is forwarded to the platform as is.
type Session struct {
	StylistID string
	Role      string
	Token     string
}

// IsAdmin reports whether the caller is a platform admin
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// CanActFor reports whether the caller may manage the stylist's availability
func (s Session) CanActFor(stylistID string) bool {
	return s.IsAdmin() || (s.StylistID != "" && s.StylistID == stylistID)
}
