package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// AdminDashboardStats returns the platform-wide overview.
func (c *Client) AdminDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	if err := c.get(ctx, "/api/admin/dashboard/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminUsers lists every user on the platform.
func (c *Client) AdminUsers(ctx context.Context) ([]ManagedUser, error) {
	var out []ManagedUser
	if err := c.get(ctx, "/api/admin/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetUserStatus activates or deactivates a user account.
func (c *Client) SetUserStatus(ctx context.Context, userID int64, active bool) error {
	query := url.Values{"isActive": []string{strconv.FormatBool(active)}}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/admin/users/%d/status", userID), query, nil, nil)
}
