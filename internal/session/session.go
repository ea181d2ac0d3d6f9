package session

import "time"

// Role identifies the capability level granted to an authenticated user.
type Role string

const (
	RolePassenger Role = "PASSENGER"
	RoleDriver    Role = "DRIVER"
	RoleAdmin     Role = "ADMIN"
)

// Session is the client-held record of the current authenticated user and
// its validity window. The token, user id, and role are always present
// together; a partially populated session is never constructed.
type Session struct {
	UserID      int64
	Email       string
	Name        string
	Role        Role
	AccessToken string
	LoginTime   time.Time
	ExpiryTime  time.Time
}
