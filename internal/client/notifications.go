package client

import (
	"context"
	"fmt"
)

// Notifications returns the current user's notifications.
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := c.get(ctx, "/api/notifications", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/api/notifications/%d/read", id), nil, nil)
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.post(ctx, "/api/notifications/read-all", nil, nil)
}

// DeleteNotification removes one notification.
func (c *Client) DeleteNotification(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/notifications/%d", id))
}

// DeleteAllNotifications removes every notification.
func (c *Client) DeleteAllNotifications(ctx context.Context) error {
	return c.delete(ctx, "/api/notifications")
}
