package domain

// Session is the in-memory view of the current identity. It is a value
// snapshot: holders never observe later mutations.
//
// A session starts loading, then settles either with an identity or
// without one (no stored identifier, or the identifier no longer resolves).
type Session struct {
	Identity  *User
	IsLoading bool
}

// IsAuthenticated reports whether a resolved identity is present.
func (s Session) IsAuthenticated() bool {
	return !s.IsLoading && s.Identity != nil
}

// Role returns the current identity's role, or "" when unauthenticated.
func (s Session) Role() Role {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}
