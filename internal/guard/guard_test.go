package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yavijexpress/rideshare-cli/internal/session"
)

type fakeState struct {
	loading bool
	sess    *session.Session
}

func (f fakeState) Loading() bool { return f.loading }

func (f fakeState) Current() (session.Session, bool) {
	if f.sess == nil {
		return session.Session{}, false
	}
	return *f.sess, true
}

func authedAs(role session.Role) fakeState {
	return fakeState{sess: &session.Session{UserID: 7, Role: role}}
}

func TestAuthenticated(t *testing.T) {
	t.Run("pending while loading", func(t *testing.T) {
		res := Authenticated(fakeState{loading: true})
		assert.Equal(t, DecisionPending, res.Decision)
	})

	t.Run("redirects anonymous to login", func(t *testing.T) {
		res := Authenticated(fakeState{})
		assert.Equal(t, DecisionRedirectLogin, res.Decision)
	})

	t.Run("allows an active session", func(t *testing.T) {
		res := Authenticated(authedAs(session.RolePassenger))
		assert.Equal(t, DecisionAllow, res.Decision)
		assert.Equal(t, session.RolePassenger, res.Role)
	})
}

func TestRequireRoles(t *testing.T) {
	t.Run("pending while loading", func(t *testing.T) {
		res := RequireRoles(fakeState{loading: true}, session.RoleAdmin)
		assert.Equal(t, DecisionPending, res.Decision)
	})

	t.Run("anonymous redirects before any role check", func(t *testing.T) {
		res := RequireRoles(fakeState{}, session.RoleAdmin)
		assert.Equal(t, DecisionRedirectLogin, res.Decision)
		assert.Empty(t, res.AllowedRoles)
	})

	t.Run("allows a matching role", func(t *testing.T) {
		res := RequireRoles(authedAs(session.RoleDriver), session.RoleDriver)
		assert.Equal(t, DecisionAllow, res.Decision)
		assert.Equal(t, session.RoleDriver, res.Role)
	})

	t.Run("allows any of several roles", func(t *testing.T) {
		res := RequireRoles(authedAs(session.RolePassenger), session.RoleDriver, session.RolePassenger)
		assert.Equal(t, DecisionAllow, res.Decision)
	})

	t.Run("denies a mismatched role with context", func(t *testing.T) {
		res := RequireRoles(authedAs(session.RolePassenger), session.RoleAdmin)
		assert.Equal(t, DecisionDeny, res.Decision)
		assert.Equal(t, session.RolePassenger, res.Role)
		assert.Equal(t, []session.Role{session.RoleAdmin}, res.AllowedRoles)
	})
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "PENDING", DecisionPending.String())
	assert.Equal(t, "ALLOW", DecisionAllow.String())
	assert.Equal(t, "REDIRECT_LOGIN", DecisionRedirectLogin.String())
	assert.Equal(t, "DENY", DecisionDeny.String())
}
