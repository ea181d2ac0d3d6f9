package commands

import (
	"context"
	"fmt"

	"github.com/yavijexpress/rideshare-cli/internal/client"
	"github.com/yavijexpress/rideshare-cli/internal/session"
)

type LoginCmd struct {
	ClientFlags
	Email    string `arg:"" help:"Account email"`
	Password string `help:"Account password" required:""`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, l.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	resp, err := app.API.Login(ctx, l.Email, l.Password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	err = app.Controller.Login(session.Credentials{
		AccessToken: resp.Token,
		UserID:      resp.ID,
		Role:        session.Role(resp.Role),
		Email:       resp.Email,
		Name:        resp.Name,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s)\n", resp.Email, resp.Role)
	return nil
}

type LogoutCmd struct {
	ClientFlags
}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, l.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	// Logout never fails outward; the remote notification is best-effort.
	app.Controller.Logout(ctx)

	fmt.Println("Logged out")
	return nil
}

type RegisterCmd struct {
	ClientFlags
	Name     string `help:"Full name" required:""`
	Email    string `arg:"" help:"Account email"`
	Password string `help:"Account password (min 8 characters)" required:""`
	Mobile   string `help:"10-digit mobile number" required:""`
	Role     string `help:"Account role" default:"PASSENGER" enum:"PASSENGER,DRIVER"`
}

func (r *RegisterCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, r.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	req := client.RegisterRequest{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Mobile:   r.Mobile,
		Role:     r.Role,
	}
	if err := app.API.Register(ctx, req); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Printf("Registered %s. Check your email for the verification code, then run 'rideshare-cli verify-otp %s --otp <code>'.\n", r.Email, r.Email)
	return nil
}

type VerifyOTPCmd struct {
	ClientFlags
	Email string `arg:"" help:"Account email"`
	OTP   string `help:"6-digit code from the verification email" required:""`
}

func (v *VerifyOTPCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, v.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := app.API.VerifyOTP(ctx, v.Email, v.OTP); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	fmt.Println("Account verified. You can now log in.")
	return nil
}

type WhoamiCmd struct {
	ClientFlags
}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, w.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireAuth(app); err != nil {
		return err
	}

	sess := currentSession(app)
	fmt.Printf("%s <%s>\n", sess.Name, sess.Email)
	fmt.Printf("  user id: %d\n", sess.UserID)
	fmt.Printf("  role:    %s\n", sess.Role)
	fmt.Printf("  expires: %s\n", sess.ExpiryTime.Format("2006-01-02 15:04:05"))
	return nil
}
