package client

import (
	"context"
	"fmt"
)

// Login authenticates with email and password and returns the credential
// bundle the session controller consumes.
func (c *Client) Login(ctx context.Context, email, password string) (*JwtResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var out JwtResponse
	if err := c.post(ctx, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, fmt.Errorf("login response missing token")
	}
	return &out, nil
}

// Register creates a new account. The account stays pending until the
// emailed OTP is verified.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.post(ctx, "/api/auth/register", req, nil)
}

// VerifyOTP confirms a registration with the emailed one-time code.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	return c.post(ctx, "/api/auth/verify-otp", OTPVerifyRequest{Email: email, OTP: otp}, nil)
}

// NotifyLogout tells the API the user is logging out. The session
// controller calls this best-effort before clearing local state.
func (c *Client) NotifyLogout(ctx context.Context) error {
	return c.post(ctx, "/api/auth/logout", nil, nil)
}

// Profile fetches the current user's account record.
func (c *Client) Profile(ctx context.Context) (*UserProfile, error) {
	var out UserProfile
	if err := c.get(ctx, "/api/auth/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword rotates the account password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	req := PasswordChangeRequest{OldPassword: oldPassword, NewPassword: newPassword}
	return c.post(ctx, "/api/auth/change-password", req, nil)
}
