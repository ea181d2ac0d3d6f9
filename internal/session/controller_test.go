package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreds = Credentials{
	AccessToken: "tok1",
	UserID:      7,
	Role:        RolePassenger,
	Email:       "asha@example.com",
	Name:        "Asha",
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type recordingNotifier struct {
	calls int
	err   error

	// When set, records whether the controller still exposed a bearer
	// token at notification time, as the HTTP transport would see it.
	source    *Controller
	hadTokens []bool
}

func (n *recordingNotifier) NotifyLogout(_ context.Context) error {
	n.calls++
	if n.source != nil {
		_, ok := n.source.Token()
		n.hadTokens = append(n.hadTokens, ok)
	}
	return n.err
}

type failingStore struct {
	Store
	writeErr error
}

func (s *failingStore) Write(fields Fields) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	return s.Store.Write(fields)
}

func collectEvents(c *Controller) *[]Event {
	events := new([]Event)
	c.Subscribe(func(ev Event) { *events = append(*events, ev) })
	return events
}

func TestController_Initialize(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("empty store starts anonymous", func(t *testing.T) {
		c := NewController(NewMemoryStore(), WithClock(fixedClock(start)))
		defer c.Teardown()

		assert.True(t, c.Loading())
		require.NoError(t, c.Initialize())

		assert.Equal(t, StateAnonymous, c.State())
		assert.False(t, c.Loading())
		_, ok := c.Current()
		assert.False(t, ok)
	})

	t.Run("populated store restores session", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Write(Fields{
			KeyAccessToken: "tok1",
			KeyUserID:      "7",
			KeyUserRole:    "DRIVER",
			KeyUserEmail:   "dev@example.com",
			KeyUserName:    "Dev",
			KeyLoginTime:   start.Format(time.RFC3339),
		}))

		c := NewController(store, WithClock(fixedClock(start.Add(time.Hour))))
		defer c.Teardown()
		require.NoError(t, c.Initialize())

		sess, ok := c.Current()
		require.True(t, ok)
		assert.Equal(t, int64(7), sess.UserID)
		assert.Equal(t, RoleDriver, sess.Role)
		assert.Equal(t, "tok1", sess.AccessToken)
		assert.Equal(t, start, sess.LoginTime)
		assert.Equal(t, start.Add(Lifetime), sess.ExpiryTime)
	})

	t.Run("missing login time defaults to now and is persisted", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Write(Fields{
			KeyAccessToken: "tok1",
			KeyUserID:      "7",
			KeyUserRole:    "PASSENGER",
		}))

		c := NewController(store, WithClock(fixedClock(start)))
		defer c.Teardown()
		require.NoError(t, c.Initialize())

		sess, ok := c.Current()
		require.True(t, ok)
		assert.Equal(t, start, sess.LoginTime)

		fields, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, start.Format(time.RFC3339), fields[KeyLoginTime])
	})

	t.Run("token without role starts anonymous", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Write(Fields{KeyAccessToken: "tok1"}))

		c := NewController(store, WithClock(fixedClock(start)))
		defer c.Teardown()
		require.NoError(t, c.Initialize())

		assert.Equal(t, StateAnonymous, c.State())
	})

	t.Run("second call fails", func(t *testing.T) {
		c := NewController(NewMemoryStore())
		defer c.Teardown()

		require.NoError(t, c.Initialize())
		assert.ErrorIs(t, c.Initialize(), ErrAlreadyInitialized)
	})
}

func TestController_Login(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("persists all fields and emits login event", func(t *testing.T) {
		store := NewMemoryStore()
		c := NewController(store, WithClock(fixedClock(start)))
		defer c.Teardown()
		require.NoError(t, c.Initialize())
		events := collectEvents(c)

		require.NoError(t, c.Login(testCreds))

		assert.Equal(t, StateAuthenticated, c.State())
		sess, ok := c.Current()
		require.True(t, ok)
		assert.Equal(t, start.Add(Lifetime), sess.ExpiryTime)

		fields, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, Fields{
			KeyAccessToken: "tok1",
			KeyUserID:      "7",
			KeyUserRole:    "PASSENGER",
			KeyUserEmail:   "asha@example.com",
			KeyUserName:    "Asha",
			KeyLoginTime:   start.Format(time.RFC3339),
		}, fields)

		require.Len(t, *events, 1)
		assert.Equal(t, EventLogin, (*events)[0].Type)
		assert.Equal(t, int64(7), (*events)[0].UserID)
		assert.Equal(t, RolePassenger, (*events)[0].Role)
	})

	t.Run("storage write failure aborts the transition", func(t *testing.T) {
		store := &failingStore{Store: NewMemoryStore(), writeErr: errors.New("disk full")}
		c := NewController(store, WithClock(fixedClock(start)))
		defer c.Teardown()
		require.NoError(t, c.Initialize())
		events := collectEvents(c)

		err := c.Login(testCreds)
		require.Error(t, err)

		assert.Equal(t, StateAnonymous, c.State())
		_, ok := c.Current()
		assert.False(t, ok)
		assert.Empty(t, *events)
	})

	t.Run("write failure also drops a prior session", func(t *testing.T) {
		store := &failingStore{Store: NewMemoryStore()}
		c := NewController(store, WithClock(fixedClock(start)))
		defer c.Teardown()
		require.NoError(t, c.Initialize())
		require.NoError(t, c.Login(testCreds))

		store.writeErr = errors.New("disk full")
		next := testCreds
		next.AccessToken = "tok2"
		require.Error(t, c.Login(next))

		// Storage was cleared before the failed write, so memory must not
		// keep claiming the old session.
		assert.Equal(t, StateAnonymous, c.State())
		_, ok := c.Current()
		assert.False(t, ok)
	})

	t.Run("replaces an existing session", func(t *testing.T) {
		store := NewMemoryStore()
		c := NewController(store, WithClock(fixedClock(start)))
		defer c.Teardown()
		require.NoError(t, c.Initialize())
		require.NoError(t, c.Login(testCreds))

		next := testCreds
		next.UserID = 9
		next.AccessToken = "tok2"
		require.NoError(t, c.Login(next))

		sess, ok := c.Current()
		require.True(t, ok)
		assert.Equal(t, int64(9), sess.UserID)
		assert.Equal(t, "tok2", sess.AccessToken)
	})
}

func TestController_Logout(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("notifies remote, emits logout, clears storage", func(t *testing.T) {
		store := NewMemoryStore()
		notifier := &recordingNotifier{}
		c := NewController(store, WithClock(fixedClock(start)), WithNotifier(notifier))
		defer c.Teardown()
		require.NoError(t, c.Initialize())
		require.NoError(t, c.Login(testCreds))
		events := collectEvents(c)

		c.Logout(ctx)

		assert.Equal(t, 1, notifier.calls)
		assert.Equal(t, StateAnonymous, c.State())

		fields, err := store.Read()
		require.NoError(t, err)
		assert.Empty(t, fields)

		require.Len(t, *events, 1)
		assert.Equal(t, EventLogout, (*events)[0].Type)
		assert.Equal(t, int64(7), (*events)[0].UserID)
	})

	t.Run("notification is sent while the token is still attached", func(t *testing.T) {
		notifier := &recordingNotifier{}
		c := NewController(NewMemoryStore(), WithClock(fixedClock(start)), WithNotifier(notifier))
		defer c.Teardown()
		notifier.source = c
		require.NoError(t, c.Initialize())
		require.NoError(t, c.Login(testCreds))

		c.Logout(ctx)

		require.Equal(t, []bool{true}, notifier.hadTokens)
		assert.Equal(t, StateAnonymous, c.State())
	})

	t.Run("notifier failure does not block local logout", func(t *testing.T) {
		store := NewMemoryStore()
		notifier := &recordingNotifier{err: errors.New("network down")}
		c := NewController(store, WithClock(fixedClock(start)), WithNotifier(notifier))
		defer c.Teardown()
		require.NoError(t, c.Initialize())
		require.NoError(t, c.Login(testCreds))

		c.Logout(ctx)

		assert.Equal(t, 1, notifier.calls)
		assert.Equal(t, StateAnonymous, c.State())
		fields, err := store.Read()
		require.NoError(t, err)
		assert.Empty(t, fields)
	})

	t.Run("idempotent when anonymous", func(t *testing.T) {
		notifier := &recordingNotifier{}
		c := NewController(NewMemoryStore(), WithClock(fixedClock(start)), WithNotifier(notifier))
		defer c.Teardown()
		require.NoError(t, c.Initialize())
		require.NoError(t, c.Login(testCreds))
		events := collectEvents(c)

		c.Logout(ctx)
		c.Logout(ctx)

		assert.Equal(t, 1, notifier.calls)
		require.Len(t, *events, 1)
	})
}

func TestController_Refresh(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("restarts the validity window from now", func(t *testing.T) {
		clock := start
		store := NewMemoryStore()
		c := NewController(store, WithClock(func() time.Time { return clock }))
		defer c.Teardown()
		require.NoError(t, c.Initialize())
		require.NoError(t, c.Login(testCreds))

		clock = start.Add(23 * time.Hour)
		ok, err := c.Refresh()
		require.NoError(t, err)
		assert.True(t, ok)

		sess, found := c.Current()
		require.True(t, found)
		assert.Equal(t, clock, sess.LoginTime)
		assert.Equal(t, clock.Add(Lifetime), sess.ExpiryTime)
	})

	t.Run("persists the new login time", func(t *testing.T) {
		clock := start
		store := NewMemoryStore()
		c := NewController(store, WithClock(func() time.Time { return clock }))
		defer c.Teardown()
		require.NoError(t, c.Initialize())
		require.NoError(t, c.Login(testCreds))

		clock = start.Add(23 * time.Hour)
		ok, err := c.Refresh()
		require.NoError(t, err)
		require.True(t, ok)

		fields, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, clock.Format(time.RFC3339), fields[KeyLoginTime])
		assert.Equal(t, "tok1", fields[KeyAccessToken])
	})

	t.Run("false when anonymous", func(t *testing.T) {
		c := NewController(NewMemoryStore(), WithClock(fixedClock(start)))
		defer c.Teardown()
		require.NoError(t, c.Initialize())

		ok, err := c.Refresh()
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("persist failure is reported", func(t *testing.T) {
		store := &failingStore{Store: NewMemoryStore()}
		c := NewController(store, WithClock(fixedClock(start)))
		defer c.Teardown()
		require.NoError(t, c.Initialize())
		require.NoError(t, c.Login(testCreds))

		store.writeErr = errors.New("disk full")
		_, err := c.Refresh()
		require.Error(t, err)
	})

	t.Run("re-arms the expiry warning", func(t *testing.T) {
		clock := start
		c := NewController(NewMemoryStore(), WithClock(func() time.Time { return clock }))
		defer c.Teardown()
		require.NoError(t, c.Initialize())
		require.NoError(t, c.Login(testCreds))
		events := collectEvents(c)

		clock = start.Add(Lifetime - 3*time.Minute)
		c.checkWarning(clock)
		require.Len(t, *events, 1)

		ok, err := c.Refresh()
		require.NoError(t, err)
		require.True(t, ok)

		clock = clock.Add(Lifetime - 3*time.Minute)
		c.checkWarning(clock)
		assert.Len(t, *events, 2)
	})
}

func TestController_UpdateProfile(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("merges fields into session and storage", func(t *testing.T) {
		store := NewMemoryStore()
		c := NewController(store, WithClock(fixedClock(start)))
		defer c.Teardown()
		require.NoError(t, c.Initialize())
		require.NoError(t, c.Login(testCreds))

		name := "Asha K"
		require.NoError(t, c.UpdateProfile(ProfileUpdate{Name: &name}))

		sess, ok := c.Current()
		require.True(t, ok)
		assert.Equal(t, "Asha K", sess.Name)
		assert.Equal(t, "asha@example.com", sess.Email)

		fields, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, "Asha K", fields[KeyUserName])
		assert.Equal(t, "asha@example.com", fields[KeyUserEmail])
	})

	t.Run("no-op when anonymous", func(t *testing.T) {
		c := NewController(NewMemoryStore(), WithClock(fixedClock(start)))
		defer c.Teardown()
		require.NoError(t, c.Initialize())

		name := "Nobody"
		require.NoError(t, c.UpdateProfile(ProfileUpdate{Name: &name}))
		_, ok := c.Current()
		assert.False(t, ok)
	})
}

func TestController_Roles(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	c := NewController(NewMemoryStore(), WithClock(fixedClock(start)))
	defer c.Teardown()
	require.NoError(t, c.Initialize())

	assert.False(t, c.HasRole(RolePassenger), "anonymous holds no roles")

	require.NoError(t, c.Login(testCreds))

	assert.True(t, c.HasRole(RolePassenger))
	assert.False(t, c.HasRole(RoleDriver))
	assert.True(t, c.HasAnyRole(RoleDriver, RolePassenger))
	assert.False(t, c.HasAnyRole(RoleDriver, RoleAdmin))
}

func TestController_Expiry(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("clears session and emits logout then expired", func(t *testing.T) {
		store := NewMemoryStore()
		notifier := &recordingNotifier{}
		c := NewController(store, WithClock(fixedClock(start)), WithNotifier(notifier))
		defer c.Teardown()
		require.NoError(t, c.Initialize())
		require.NoError(t, c.Login(testCreds))
		events := collectEvents(c)

		c.checkExpiry(start.Add(Lifetime))

		assert.Equal(t, StateAnonymous, c.State())
		assert.Equal(t, 1, notifier.calls)

		fields, err := store.Read()
		require.NoError(t, err)
		assert.Empty(t, fields)

		require.Len(t, *events, 2)
		assert.Equal(t, EventLogout, (*events)[0].Type)
		assert.Equal(t, int64(7), (*events)[0].UserID)
		assert.Equal(t, EventSessionExpired, (*events)[1].Type)
		assert.NotEmpty(t, (*events)[1].Message)
	})

	t.Run("notification is sent while the token is still attached", func(t *testing.T) {
		notifier := &recordingNotifier{}
		c := NewController(NewMemoryStore(), WithClock(fixedClock(start)), WithNotifier(notifier))
		defer c.Teardown()
		notifier.source = c
		require.NoError(t, c.Initialize())
		require.NoError(t, c.Login(testCreds))

		c.checkExpiry(start.Add(Lifetime))

		require.Equal(t, []bool{true}, notifier.hadTokens)
		assert.Equal(t, StateAnonymous, c.State())
	})

	t.Run("no-op before expiry", func(t *testing.T) {
		c := NewController(NewMemoryStore(), WithClock(fixedClock(start)))
		defer c.Teardown()
		require.NoError(t, c.Initialize())
		require.NoError(t, c.Login(testCreds))
		events := collectEvents(c)

		c.checkExpiry(start.Add(Lifetime - time.Second))

		assert.Equal(t, StateAuthenticated, c.State())
		assert.Empty(t, *events)
	})

	t.Run("fires at most once", func(t *testing.T) {
		c := NewController(NewMemoryStore(), WithClock(fixedClock(start)))
		defer c.Teardown()
		require.NoError(t, c.Initialize())
		require.NoError(t, c.Login(testCreds))
		events := collectEvents(c)

		expired := start.Add(Lifetime + time.Minute)
		c.checkExpiry(expired)
		c.checkExpiry(expired.Add(time.Minute))

		assert.Len(t, *events, 2)
	})
}

func TestController_Warning(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	newAuthed := func(t *testing.T) (*Controller, *[]Event) {
		t.Helper()
		c := NewController(NewMemoryStore(), WithClock(fixedClock(start)))
		t.Cleanup(c.Teardown)
		require.NoError(t, c.Initialize())
		require.NoError(t, c.Login(testCreds))
		return c, collectEvents(c)
	}

	t.Run("fires inside the window", func(t *testing.T) {
		c, events := newAuthed(t)

		c.checkWarning(start.Add(Lifetime - 4*time.Minute))

		require.Len(t, *events, 1)
		assert.Equal(t, EventSessionWarning, (*events)[0].Type)
	})

	t.Run("silent before the window", func(t *testing.T) {
		c, events := newAuthed(t)

		c.checkWarning(start.Add(Lifetime - 6*time.Minute))

		assert.Empty(t, *events)
	})

	t.Run("silent at or past expiry", func(t *testing.T) {
		c, events := newAuthed(t)

		c.checkWarning(start.Add(Lifetime))

		assert.Empty(t, *events)
	})

	t.Run("fires once per session", func(t *testing.T) {
		c, events := newAuthed(t)

		c.checkWarning(start.Add(Lifetime - 4*time.Minute))
		c.checkWarning(start.Add(Lifetime - 3*time.Minute))

		assert.Len(t, *events, 1)
	})
}

func TestController_HandleUnauthorized(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("clears session and storage without events", func(t *testing.T) {
		store := NewMemoryStore()
		notifier := &recordingNotifier{}
		c := NewController(store, WithClock(fixedClock(start)), WithNotifier(notifier))
		defer c.Teardown()
		require.NoError(t, c.Initialize())
		require.NoError(t, c.Login(testCreds))
		events := collectEvents(c)

		c.HandleUnauthorized()

		assert.Equal(t, StateAnonymous, c.State())
		assert.Zero(t, notifier.calls)
		assert.Empty(t, *events)

		fields, err := store.Read()
		require.NoError(t, err)
		assert.Empty(t, fields)
	})

	t.Run("safe when anonymous", func(t *testing.T) {
		c := NewController(NewMemoryStore(), WithClock(fixedClock(start)))
		defer c.Teardown()
		require.NoError(t, c.Initialize())

		c.HandleUnauthorized()
		assert.Equal(t, StateAnonymous, c.State())
	})
}

func TestController_Teardown(t *testing.T) {
	c := NewController(NewMemoryStore())
	require.NoError(t, c.Initialize())

	c.Teardown()
	c.Teardown()
}
