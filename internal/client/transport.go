package client

import (
	"net/http"

	"github.com/google/uuid"
)

// Header names attached to outbound requests.
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserRole  = "X-User-Role"
	HeaderRequestID = "X-Request-ID"
)

// SessionSource supplies the credentials attached to outbound requests.
// Implemented by the session controller.
type SessionSource interface {
	Token() (string, bool)
	Identity() (userID, role string, ok bool)
}

// UnauthorizedHandler clears local session state when the remote API
// rejects a request as unauthorized. Implemented by the session controller.
type UnauthorizedHandler interface {
	HandleUnauthorized()
}

// Redirector forces navigation to the login entry point after an
// authorization failure. Distinct from any in-app redirect: the intent is a
// clean state reset.
type Redirector interface {
	RedirectToLogin()
}

// Transport decorates an http.RoundTripper with bearer and identity header
// injection on the way out and unauthorized interception on the way back.
// It does not retry, rate-limit, or transform payloads; every response
// other than 401 passes through unchanged.
type Transport struct {
	Base         http.RoundTripper
	Session      SessionSource
	Unauthorized UnauthorizedHandler
	Redirect     Redirector
}

var _ http.RoundTripper = (*Transport)(nil)

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if t.Session != nil {
		if token, ok := t.Session.Token(); ok {
			clone.Header.Set("Authorization", "Bearer "+token)
		}
		if userID, role, ok := t.Session.Identity(); ok {
			// Caller-set identity headers win; never override.
			if clone.Header.Get(HeaderUserID) == "" {
				clone.Header.Set(HeaderUserID, userID)
			}
			if clone.Header.Get(HeaderUserRole) == "" {
				clone.Header.Set(HeaderUserRole, role)
			}
		}
	}

	if clone.Header.Get(HeaderRequestID) == "" {
		clone.Header.Set(HeaderRequestID, uuid.New().String())
	}

	resp, err := t.base().RoundTrip(clone)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Clear local state and initiate the redirect before the caller
		// observes the rejection. The response itself still propagates.
		if t.Unauthorized != nil {
			t.Unauthorized.HandleUnauthorized()
		}
		if t.Redirect != nil {
			t.Redirect.RedirectToLogin()
		}
	}

	return resp, nil
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}
