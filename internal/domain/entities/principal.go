package entities

type PrincipalKind string

const (
	// PrincipalSession is a human user authenticated with a session token.
	PrincipalSession PrincipalKind = "session"
	// PrincipalService is an API token holder; it carries a permission set
	// and no team membership.
	PrincipalService PrincipalKind = "service"
)

type Principal struct {
	Kind  PrincipalKind
	User  *User
	Token *APIToken
}

func SessionPrincipal(user *User) *Principal {
	return &Principal{Kind: PrincipalSession, User: user}
}

func ServicePrincipal(token *APIToken) *Principal {
	return &Principal{Kind: PrincipalService, Token: token}
}

// IsAdmin reports whether the principal passes the role gate. Service
// principals never do, regardless of permissions.
func (p *Principal) IsAdmin() bool {
	return p.Kind == PrincipalSession && p.User.Role == RoleAdmin
}

// HasPermission reports whether the principal passes the permission gate for
// perm. Session principals are exempt; they are governed by the role and team
// model instead.
func (p *Principal) HasPermission(perm Permission) bool {
	if p.Kind == PrincipalSession {
		return true
	}
	return p.Token.HasPermission(perm)
}
