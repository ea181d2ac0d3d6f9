package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

type SessionCmd struct {
	Show         SessionShowCmd         `cmd:"" help:"Show the stored session state"`
	Refresh      SessionRefreshCmd      `cmd:"" help:"Extend the session's expiry window"`
	InspectToken SessionInspectTokenCmd `cmd:"" name:"inspect-token" help:"Decode the stored access token without verifying it"`
}

type SessionShowCmd struct {
	ClientFlags
}

func (s *SessionShowCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, s.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	sess, ok := app.Controller.Current()
	if !ok {
		fmt.Println("No active session")
		return nil
	}

	fmt.Printf("state:     %s\n", app.Controller.State())
	fmt.Printf("user:      %s <%s> (id %d)\n", sess.Name, sess.Email, sess.UserID)
	fmt.Printf("role:      %s\n", sess.Role)
	fmt.Printf("logged in: %s\n", sess.LoginTime.Format("2006-01-02 15:04:05"))
	fmt.Printf("expires:   %s\n", sess.ExpiryTime.Format("2006-01-02 15:04:05"))
	return nil
}

type SessionRefreshCmd struct {
	ClientFlags
}

func (s *SessionRefreshCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, s.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	ok, err := app.Controller.Refresh()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("No active session to refresh")
		return nil
	}

	sess := currentSession(app)
	fmt.Printf("Session extended until %s\n", sess.ExpiryTime.Format("2006-01-02 15:04:05"))
	return nil
}

type SessionInspectTokenCmd struct {
	ClientFlags
}

func (s *SessionInspectTokenCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, s.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireAuth(app); err != nil {
		return err
	}

	sess := currentSession(app)

	// Display only. The token is trusted as-is for session purposes; the
	// server is the sole validator.
	token, _, err := jwt.NewParser().ParseUnverified(sess.AccessToken, jwt.MapClaims{})
	if err != nil {
		return fmt.Errorf("stored token is not a parseable JWT: %w", err)
	}

	header, err := json.MarshalIndent(token.Header, "", "  ")
	if err != nil {
		return err
	}
	claims, err := json.MarshalIndent(token.Claims, "", "  ")
	if err != nil {
		return err
	}

	fmt.Printf("header:\n%s\nclaims:\n%s\n", header, claims)
	return nil
}
