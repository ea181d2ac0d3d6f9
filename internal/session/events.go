package session

import "time"

// EventType names the process-wide notifications emitted by the Controller.
type EventType string

const (
	// EventLogin fires after a successful login. Payload: UserID, Role, Timestamp.
	EventLogin EventType = "user-login"

	// EventLogout fires when the session ends, whether by explicit logout or
	// expiry. Payload: UserID, Role, Timestamp.
	EventLogout EventType = "user-logout"

	// EventSessionWarning fires once when the session enters its final five
	// minutes. Empty payload.
	EventSessionWarning EventType = "session-warning"

	// EventSessionExpired fires once when the expiry monitor clears an
	// expired session. Payload: Message.
	EventSessionExpired EventType = "session-expired"
)

// Event is a fire-and-forget notification for external observers such as
// analytics or UI toasts. The controller never subscribes to its own
// emissions.
type Event struct {
	Type      EventType
	UserID    int64
	Role      Role
	Message   string
	Timestamp time.Time
}
