// Package guard decides, per navigation, whether a protected view may
// render. It is a pure function over (initializing, principal, allowed
// roles); HTTP enforcement lives in the http middleware.
package guard

import "travia-admin/internal/domain"

// Outcome of an access decision.
type Outcome int

const (
	// Wait: authentication state is still indeterminate; never redirect
	// while the session store is loading.
	Wait Outcome = iota
	// ToLogin: unauthenticated, send to the login view capturing the
	// requested location.
	ToLogin
	// ToHome: authenticated but under-authorized; silent redirect home.
	ToHome
	// Render: access granted.
	Render
)

func (o Outcome) String() string {
	switch o {
	case Wait:
		return "wait"
	case ToLogin:
		return "to_login"
	case ToHome:
		return "to_home"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

// Decide evaluates the access rule. An empty allowed set means any
// authenticated role. Re-evaluated on every navigation; holds no state.
func Decide(initializing bool, p *domain.Principal, allowed []domain.Role) Outcome {
	if initializing {
		return Wait
	}
	if p == nil {
		return ToLogin
	}
	if !p.HasRole(allowed) {
		return ToHome
	}
	return Render
}
