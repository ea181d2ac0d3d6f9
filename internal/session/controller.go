package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// State tracks where the controller is in its lifecycle.
type State int

const (
	// StateUninitialized means Initialize has not completed yet. Guards and
	// views must treat this as "decision pending", never as unauthenticated.
	StateUninitialized State = iota

	// StateAnonymous means no session is active.
	StateAnonymous

	// StateAuthenticated means a session is active.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "UNINITIALIZED"
	case StateAnonymous:
		return "ANONYMOUS"
	case StateAuthenticated:
		return "AUTHENTICATED"
	default:
		return "UNKNOWN"
	}
}

const (
	// Lifetime is the fixed validity window of a session, measured from
	// login. It does not slide with activity; only Refresh extends it.
	Lifetime = 24 * time.Hour

	// warningWindow is how long before expiry the warning event fires.
	warningWindow = 5 * time.Minute

	// defaultCheckInterval is how often the expiry and warning monitors run.
	defaultCheckInterval = time.Minute
)

const expiredMessage = "Your session has expired. Please log in again."

// ErrAlreadyInitialized is returned when Initialize is called twice.
var ErrAlreadyInitialized = errors.New("session controller already initialized")

// RemoteNotifier tells the remote API that the user logged out. The call is
// best-effort: failures are logged and swallowed, and local logout proceeds
// regardless.
type RemoteNotifier interface {
	NotifyLogout(ctx context.Context) error
}

// Credentials are the fields obtained from a successful remote login call.
type Credentials struct {
	AccessToken string
	UserID      int64
	Role        Role
	Email       string
	Name        string
}

// ProfileUpdate carries optional name and email changes. Nil fields are
// left untouched.
type ProfileUpdate struct {
	Name  *string
	Email *string
}

// Controller is the single source of truth for the current Session. It owns
// the expiry and warning monitors and every transition between the
// anonymous and authenticated states.
//
// Construct one per process, call Initialize before use, and Teardown on
// exit to stop the monitors.
type Controller struct {
	store    Store
	now      func() time.Time
	lifetime time.Duration
	interval time.Duration

	mu       sync.Mutex
	state    State
	session  *Session
	warned   bool
	notifier RemoteNotifier
	subs     []func(Event)

	stopCh   chan struct{}
	stopOnce sync.Once
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLifetime overrides the fixed session lifetime.
func WithLifetime(d time.Duration) Option {
	return func(c *Controller) { c.lifetime = d }
}

// WithCheckInterval overrides how often the monitors run.
func WithCheckInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

// WithNotifier installs the best-effort remote logout notifier.
func WithNotifier(n RemoteNotifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// NewController creates a controller backed by the given store.
func NewController(store Store, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		now:      time.Now,
		lifetime: Lifetime,
		interval: defaultCheckInterval,
		state:    StateUninitialized,
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetNotifier installs the best-effort remote logout notifier after
// construction. Used when the notifier is the API client, which itself
// needs the controller as its credential source.
func (c *Controller) SetNotifier(n RemoteNotifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifier = n
}

// Subscribe registers an observer for controller events. Observers are
// invoked synchronously after the state change and must not call back into
// the controller.
func (c *Controller) Subscribe(fn func(Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Initialize reconstructs the session from durable storage and starts the
// expiry and warning monitors. The terminal state choice between anonymous
// and authenticated is made exactly once per process.
func (c *Controller) Initialize() error {
	fields, err := c.store.Read()
	if err != nil {
		return fmt.Errorf("failed to read session storage: %w", err)
	}

	c.mu.Lock()
	if c.state != StateUninitialized {
		c.mu.Unlock()
		return ErrAlreadyInitialized
	}

	token := fields[KeyAccessToken]
	role := fields[KeyUserRole]
	if token == "" || role == "" {
		c.state = StateAnonymous
		c.mu.Unlock()
		c.startMonitors()
		log.Debug().Msg("no stored session, starting anonymous")
		return nil
	}

	userID, _ := strconv.ParseInt(fields[KeyUserID], 10, 64)

	// A stored token is trusted as-is; the separately tracked login time is
	// the only local expiry signal. Default it to now when absent.
	loginTime := c.now()
	persistLoginTime := true
	if raw := fields[KeyLoginTime]; raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			loginTime = t
			persistLoginTime = false
		}
	}

	c.session = &Session{
		UserID:      userID,
		Email:       fields[KeyUserEmail],
		Name:        fields[KeyUserName],
		Role:        Role(role),
		AccessToken: token,
		LoginTime:   loginTime,
		ExpiryTime:  loginTime.Add(c.lifetime),
	}
	c.state = StateAuthenticated
	expiry := c.session.ExpiryTime
	c.mu.Unlock()

	if persistLoginTime {
		fields[KeyLoginTime] = loginTime.UTC().Format(time.RFC3339)
		if err := c.store.Write(fields); err != nil {
			return fmt.Errorf("failed to persist login time: %w", err)
		}
	}

	c.startMonitors()

	log.Debug().
		Int64("userID", userID).
		Str("role", role).
		Time("expiry", expiry).
		Msg("restored session from storage")

	return nil
}

// Login installs freshly obtained credentials as the active session. Any
// prior session is cleared first and the six durable fields are written
// together, so storage never holds a partial session. A storage write
// failure aborts the transition and is returned to the caller; any prior
// in-memory session is dropped too, so memory never claims a session that
// storage no longer holds.
func (c *Controller) Login(creds Credentials) error {
	now := c.now()

	fields := Fields{
		KeyAccessToken: creds.AccessToken,
		KeyUserID:      strconv.FormatInt(creds.UserID, 10),
		KeyUserRole:    string(creds.Role),
		KeyUserEmail:   creds.Email,
		KeyUserName:    creds.Name,
		KeyLoginTime:   now.UTC().Format(time.RFC3339),
	}

	if err := c.store.Clear(); err != nil {
		c.take(nil)
		return fmt.Errorf("failed to clear prior session: %w", err)
	}
	if err := c.store.Write(fields); err != nil {
		c.take(nil)
		return fmt.Errorf("failed to write session: %w", err)
	}

	c.mu.Lock()
	c.session = &Session{
		UserID:      creds.UserID,
		Email:       creds.Email,
		Name:        creds.Name,
		Role:        creds.Role,
		AccessToken: creds.AccessToken,
		LoginTime:   now,
		ExpiryTime:  now.Add(c.lifetime),
	}
	c.state = StateAuthenticated
	c.warned = false
	c.mu.Unlock()

	log.Info().
		Int64("userID", creds.UserID).
		Str("role", string(creds.Role)).
		Msg("user logged in")

	c.emit(Event{Type: EventLogin, UserID: creds.UserID, Role: creds.Role, Timestamp: now})

	return nil
}

// Logout notifies the remote API on a best-effort basis, emits the logout
// event, then clears the session and durable storage regardless of the
// notification outcome. The notification goes out while the session is
// still attached so the request carries the bearer token the server needs
// to revoke. It never fails outward and is idempotent: with no active
// session it only makes sure storage is empty.
func (c *Controller) Logout(ctx context.Context) {
	if _, ok := c.Current(); !ok {
		c.clearStorage()
		return
	}

	c.notifyRemote(ctx)

	sess := c.take(nil)
	if sess == nil {
		// Another path cleared the session while we were notifying.
		c.clearStorage()
		return
	}

	c.emit(Event{Type: EventLogout, UserID: sess.UserID, Role: sess.Role, Timestamp: c.now()})

	c.clearStorage()

	log.Info().Int64("userID", sess.UserID).Msg("user logged out")
}

// Refresh restarts the active session's validity window from now, moving
// the stored login time forward so the extension survives a process
// restart. Returns false when no session is active.
func (c *Controller) Refresh() (bool, error) {
	c.mu.Lock()
	if c.state != StateAuthenticated || c.session == nil {
		c.mu.Unlock()
		return false, nil
	}

	now := c.now()
	c.session.LoginTime = now
	c.session.ExpiryTime = now.Add(c.lifetime)
	c.warned = false
	fields := c.fieldsLocked()
	c.mu.Unlock()

	if err := c.store.Write(fields); err != nil {
		return true, fmt.Errorf("failed to persist refreshed session: %w", err)
	}
	return true, nil
}

// UpdateProfile merges name and email changes into the session and durable
// storage. No-op when no session is active.
func (c *Controller) UpdateProfile(update ProfileUpdate) error {
	c.mu.Lock()
	if c.state != StateAuthenticated || c.session == nil {
		c.mu.Unlock()
		return nil
	}

	if update.Name != nil {
		c.session.Name = *update.Name
	}
	if update.Email != nil {
		c.session.Email = *update.Email
	}
	fields := c.fieldsLocked()
	c.mu.Unlock()

	if err := c.store.Write(fields); err != nil {
		return fmt.Errorf("failed to persist profile update: %w", err)
	}
	return nil
}

// HasRole reports whether the active session holds the given role.
func (c *Controller) HasRole(role Role) bool {
	return c.HasAnyRole(role)
}

// HasAnyRole reports whether the active session holds one of the given roles.
func (c *Controller) HasAnyRole(roles ...Role) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAuthenticated || c.session == nil {
		return false
	}
	return slices.Contains(roles, c.session.Role)
}

// Current returns a copy of the active session, if any.
func (c *Controller) Current() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAuthenticated || c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// State returns the controller's lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Loading reports whether Initialize has yet to complete.
func (c *Controller) Loading() bool {
	return c.State() == StateUninitialized
}

// Token returns the active bearer token, if any. Part of the credential
// source consumed by the HTTP transport.
func (c *Controller) Token() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAuthenticated || c.session == nil {
		return "", false
	}
	return c.session.AccessToken, true
}

// Identity returns the active user id and role as header values. Part of
// the credential source consumed by the HTTP transport.
func (c *Controller) Identity() (userID, role string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAuthenticated || c.session == nil {
		return "", "", false
	}
	return strconv.FormatInt(c.session.UserID, 10), string(c.session.Role), true
}

// HandleUnauthorized reacts to a 401 from the remote API: the session is
// treated as invalid regardless of cause and cleared locally, both
// in-memory and in durable storage. The core emits no events here; the
// transport drives any user-facing redirect.
func (c *Controller) HandleUnauthorized() {
	if sess := c.take(nil); sess != nil {
		log.Warn().Int64("userID", sess.UserID).Msg("unauthorized response, clearing session")
	}
	c.clearStorage()
}

// Teardown stops the expiry and warning monitors. It does not clear the
// session. Safe to call more than once.
func (c *Controller) Teardown() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// startMonitors launches the two independent periodic checks. They share no
// ordering guarantee and are each a no-op once the session is cleared.
func (c *Controller) startMonitors() {
	go c.runMonitor(c.checkExpiry)
	go c.runMonitor(c.checkWarning)
}

func (c *Controller) runMonitor(check func(time.Time)) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			check(c.now())
		}
	}
}

// checkExpiry clears the session once its expiry time has passed, with the
// same effects as Logout plus a session-expired notification. As in Logout,
// the remote call runs before the session detaches so it still carries the
// bearer token.
func (c *Controller) checkExpiry(now time.Time) {
	expired := func(s *Session) bool {
		return !now.Before(s.ExpiryTime)
	}

	c.mu.Lock()
	shouldNotify := c.state == StateAuthenticated && c.session != nil && expired(c.session)
	c.mu.Unlock()
	if !shouldNotify {
		return
	}

	c.notifyRemote(context.Background())

	sess := c.take(expired)
	if sess == nil {
		return
	}

	c.emit(Event{Type: EventLogout, UserID: sess.UserID, Role: sess.Role, Timestamp: now})
	c.emit(Event{Type: EventSessionExpired, Message: expiredMessage})

	c.clearStorage()

	log.Info().
		Int64("userID", sess.UserID).
		Time("expiry", sess.ExpiryTime).
		Msg("session expired")
}

// checkWarning fires the session-warning event once when the current time
// enters the window [expiry-5m, expiry).
func (c *Controller) checkWarning(now time.Time) {
	c.mu.Lock()
	fire := false
	if c.state == StateAuthenticated && c.session != nil && !c.warned {
		start := c.session.ExpiryTime.Add(-warningWindow)
		if !now.Before(start) && now.Before(c.session.ExpiryTime) {
			c.warned = true
			fire = true
		}
	}
	c.mu.Unlock()

	if fire {
		c.emit(Event{Type: EventSessionWarning})
	}
}

// take atomically detaches the active session and moves the controller to
// the anonymous state, provided cond (when non-nil) holds for it. Returns
// nil when no session was active or cond failed. Checking and detaching in
// one critical section is what makes logout, expiry, and the unauthorized
// path idempotent against each other.
func (c *Controller) take(cond func(*Session) bool) *Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAuthenticated || c.session == nil {
		return nil
	}
	if cond != nil && !cond(c.session) {
		return nil
	}

	sess := c.session
	c.session = nil
	c.state = StateAnonymous
	c.warned = false
	return sess
}

func (c *Controller) notifyRemote(ctx context.Context) {
	c.mu.Lock()
	notifier := c.notifier
	c.mu.Unlock()

	if notifier == nil {
		return
	}
	if err := notifier.NotifyLogout(ctx); err != nil {
		log.Warn().Err(err).Msg("logout notification failed, clearing session anyway")
	}
}

func (c *Controller) clearStorage() {
	if err := c.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to clear session storage")
	}
}

func (c *Controller) emit(ev Event) {
	c.mu.Lock()
	subs := make([]func(Event), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// fieldsLocked materializes the durable field set from the in-memory
// session. Caller holds c.mu and has checked c.session is non-nil.
func (c *Controller) fieldsLocked() Fields {
	return Fields{
		KeyAccessToken: c.session.AccessToken,
		KeyUserID:      strconv.FormatInt(c.session.UserID, 10),
		KeyUserRole:    string(c.session.Role),
		KeyUserEmail:   c.session.Email,
		KeyUserName:    c.session.Name,
		KeyLoginTime:   c.session.LoginTime.UTC().Format(time.RFC3339),
	}
}
