// Package access holds the route authorization decision. It is pure: no
// network, no storage, deterministic for a given session and requirement.
package access

import "jobunya-carrental-backend/internal/domain"

const (
	LoginPath = "/auth"
	HomePath  = "/"
)

type Decision struct {
	Allow        bool
	RedirectPath string
}

func Allowed() Decision {
	return Decision{Allow: true}
}

func RedirectTo(path string) Decision {
	return Decision{RedirectPath: path}
}

// Decide resolves whether a session may reach a view that requires the given
// role. Exactly three outcomes exist:
//
//   - no session / no token        -> redirect to the login view
//   - session present, wrong role  -> redirect home (unauthorized, not unauthenticated)
//   - otherwise                    -> allow
//
// An empty requiredRole means any authenticated user is acceptable.
func Decide(session *domain.Session, requiredRole domain.Role) Decision {
	if session == nil || session.Token == "" {
		return RedirectTo(LoginPath)
	}
	if requiredRole != "" && session.User.Role != requiredRole {
		return RedirectTo(HomePath)
	}
	return Allowed()
}
