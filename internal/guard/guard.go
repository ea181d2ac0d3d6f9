// Package guard gates access to protected views based on session state.
//
// Two guard kinds compose: Authenticated redirects anonymous users to the
// login entry point, and RequireRoles additionally denies authenticated
// users whose role is not in the allowed set. A role comparison never runs
// for an anonymous session; the authenticated guard short-circuits first.
package guard

import (
	"slices"

	"github.com/yavijexpress/rideshare-cli/internal/session"
)

// Decision is the outcome of evaluating a guard.
type Decision int

const (
	// DecisionPending means the session controller has not finished
	// initializing. Callers must hold rendering, not redirect.
	DecisionPending Decision = iota

	// DecisionAllow lets the nested view render.
	DecisionAllow

	// DecisionRedirectLogin sends the user to the login entry point,
	// replacing history so back-navigation does not return here.
	DecisionRedirectLogin

	// DecisionDeny renders an access-denied view. It is a dead end: no
	// redirect follows, the user must navigate away explicitly.
	DecisionDeny
)

func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "PENDING"
	case DecisionAllow:
		return "ALLOW"
	case DecisionRedirectLogin:
		return "REDIRECT_LOGIN"
	case DecisionDeny:
		return "DENY"
	default:
		return "UNKNOWN"
	}
}

// Result carries the decision plus the role context an access-denied view
// needs to explain itself.
type Result struct {
	Decision     Decision
	Role         session.Role   // role held by the current session, when any
	AllowedRoles []session.Role // roles the route accepts, set on denial
}

// SessionState is the controller surface guards consume.
type SessionState interface {
	Loading() bool
	Current() (session.Session, bool)
}

// Authenticated gates a view on the presence of an active session.
func Authenticated(state SessionState) Result {
	if state.Loading() {
		return Result{Decision: DecisionPending}
	}

	sess, ok := state.Current()
	if !ok {
		return Result{Decision: DecisionRedirectLogin}
	}

	return Result{Decision: DecisionAllow, Role: sess.Role}
}

// RequireRoles composes the authenticated guard with a role check against a
// non-empty allowed set. The session is guaranteed non-nil by the time the
// role comparison runs.
func RequireRoles(state SessionState, allowed ...session.Role) Result {
	res := Authenticated(state)
	if res.Decision != DecisionAllow {
		return res
	}

	if slices.Contains(allowed, res.Role) {
		return res
	}

	return Result{Decision: DecisionDeny, Role: res.Role, AllowedRoles: allowed}
}
