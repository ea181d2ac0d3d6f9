package client

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	token  string
	userID string
	role   string
}

func (f fakeSession) Token() (string, bool) {
	return f.token, f.token != ""
}

func (f fakeSession) Identity() (string, string, bool) {
	return f.userID, f.role, f.userID != ""
}

type recordingHooks struct {
	unauthorized int
	redirects    int
}

func (r *recordingHooks) HandleUnauthorized() { r.unauthorized++ }
func (r *recordingHooks) RedirectToLogin()    { r.redirects++ }

func TestTransport_RoundTrip(t *testing.T) {
	t.Run("injects bearer and identity headers", func(t *testing.T) {
		var got http.Header
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
		}))
		defer srv.Close()

		hc := &http.Client{Transport: &Transport{
			Session: fakeSession{token: "tok1", userID: "7", role: "PASSENGER"},
		}}
		resp, err := hc.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, "Bearer tok1", got.Get("Authorization"))
		assert.Equal(t, "7", got.Get(HeaderUserID))
		assert.Equal(t, "PASSENGER", got.Get(HeaderUserRole))
		assert.NotEmpty(t, got.Get(HeaderRequestID))
	})

	t.Run("anonymous session adds no credential headers", func(t *testing.T) {
		var got http.Header
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
		}))
		defer srv.Close()

		hc := &http.Client{Transport: &Transport{Session: fakeSession{}}}
		resp, err := hc.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Empty(t, got.Get("Authorization"))
		assert.Empty(t, got.Get(HeaderUserID))
		assert.Empty(t, got.Get(HeaderUserRole))
		assert.NotEmpty(t, got.Get(HeaderRequestID))
	})

	t.Run("caller-set identity headers win", func(t *testing.T) {
		var got http.Header
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
		}))
		defer srv.Close()

		hc := &http.Client{Transport: &Transport{
			Session: fakeSession{token: "tok1", userID: "7", role: "ADMIN"},
		}}
		req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
		require.NoError(t, err)
		req.Header.Set(HeaderUserRole, "DRIVER")
		req.Header.Set(HeaderRequestID, "fixed-id")

		resp, err := hc.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, "DRIVER", got.Get(HeaderUserRole))
		assert.Equal(t, "7", got.Get(HeaderUserID))
		assert.Equal(t, "fixed-id", got.Get(HeaderRequestID))
	})

	t.Run("does not mutate the original request", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer srv.Close()

		hc := &http.Client{Transport: &Transport{
			Session: fakeSession{token: "tok1", userID: "7", role: "PASSENGER"},
		}}
		req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
		require.NoError(t, err)

		resp, err := hc.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Empty(t, req.Header.Get("Authorization"))
		assert.Empty(t, req.Header.Get(HeaderUserID))
	})

	t.Run("401 triggers clear and redirect before propagating", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		hooks := &recordingHooks{}
		hc := &http.Client{Transport: &Transport{
			Session:      fakeSession{token: "stale"},
			Unauthorized: hooks,
			Redirect:     hooks,
		}}
		resp, err := hc.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, 1, hooks.unauthorized)
		assert.Equal(t, 1, hooks.redirects)
	})

	t.Run("other failure statuses pass through untouched", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		hooks := &recordingHooks{}
		hc := &http.Client{Transport: &Transport{
			Session:      fakeSession{token: "tok1"},
			Unauthorized: hooks,
			Redirect:     hooks,
		}}
		resp, err := hc.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Zero(t, hooks.unauthorized)
		assert.Zero(t, hooks.redirects)
	})
}
