// Package authz holds the single access decision used by every protected
// surface. The decision is a pure function of the session and the required
// role; callers re-evaluate it on every request.
package authz

import "github.com/protolab/portal-api/internal/core/domain"

// Decision is the outcome of evaluating a session against a protected view.
type Decision int

const (
	// Loading: the session is still resolving; render nothing yet.
	Loading Decision = iota
	// DeniedUnauthenticated: no identity; send the caller to login.
	DeniedUnauthenticated
	// DeniedWrongRole: authenticated but the wrong role; send the caller to
	// the default landing view, never back to login.
	DeniedWrongRole
	// Allowed: render the protected content.
	Allowed
)

func (d Decision) String() string {
	switch d {
	case Loading:
		return "loading"
	case DeniedUnauthenticated:
		return "denied_unauthenticated"
	case DeniedWrongRole:
		return "denied_wrong_role"
	case Allowed:
		return "allowed"
	}
	return "unknown"
}

const (
	loginPath   = "/login"
	landingPath = "/dashboard"
)

// Evaluate decides access for a protected view. An empty required role means
// any authenticated identity is allowed.
func Evaluate(s domain.Session, required domain.Role) Decision {
	if s.IsLoading {
		return Loading
	}
	if s.Identity == nil {
		return DeniedUnauthenticated
	}
	if required != "" && s.Identity.Role != required {
		return DeniedWrongRole
	}
	return Allowed
}

// RedirectFor maps a denial to the path the caller should be sent to.
// Returns "" for decisions that carry no redirect.
func RedirectFor(d Decision) string {
	switch d {
	case DeniedUnauthenticated:
		return loginPath
	case DeniedWrongRole:
		return landingPath
	}
	return ""
}
