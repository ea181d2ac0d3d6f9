package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"

	"github.com/yavijexpress/rideshare-cli/internal/client"
)

type NotificationsCmd struct {
	List    NotificationsListCmd    `cmd:"" help:"List notifications"`
	Read    NotificationsReadCmd    `cmd:"" help:"Mark a notification as read"`
	ReadAll NotificationsReadAllCmd `cmd:"" name:"read-all" help:"Mark all notifications as read"`
	Delete  NotificationsDeleteCmd  `cmd:"" help:"Delete notifications"`
	Watch   NotificationsWatchCmd   `cmd:"" help:"Poll for new notifications"`
}

type NotificationsListCmd struct {
	ClientFlags
	Unread bool `help:"Only show unread notifications"`
}

func (n *NotificationsListCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, n.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireAuth(app); err != nil {
		return err
	}

	notifications, err := app.API.Notifications(ctx)
	if err != nil {
		return fmt.Errorf("failed to list notifications: %w", err)
	}

	shown := 0
	for _, notification := range notifications {
		if n.Unread && notification.IsRead {
			continue
		}
		printNotification(notification)
		shown++
	}
	if shown == 0 {
		fmt.Println("No notifications")
	}
	return nil
}

type NotificationsReadCmd struct {
	ClientFlags
	ID int64 `arg:"" help:"Notification id"`
}

func (n *NotificationsReadCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, n.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireAuth(app); err != nil {
		return err
	}

	if err := app.API.MarkNotificationRead(ctx, n.ID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	fmt.Printf("Notification %d marked read\n", n.ID)
	return nil
}

type NotificationsReadAllCmd struct {
	ClientFlags
}

func (n *NotificationsReadAllCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, n.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireAuth(app); err != nil {
		return err
	}

	if err := app.API.MarkAllNotificationsRead(ctx); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	fmt.Println("All notifications marked read")
	return nil
}

type NotificationsDeleteCmd struct {
	ClientFlags
	ID  int64 `arg:"" optional:"" help:"Notification id"`
	All bool  `help:"Delete every notification"`
}

func (n *NotificationsDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, n.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireAuth(app); err != nil {
		return err
	}

	if n.All {
		if err := app.API.DeleteAllNotifications(ctx); err != nil {
			return fmt.Errorf("failed to delete notifications: %w", err)
		}
		fmt.Println("All notifications deleted")
		return nil
	}

	if n.ID == 0 {
		return fmt.Errorf("specify a notification id or --all")
	}

	if err := app.API.DeleteNotification(ctx, n.ID); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}

	fmt.Printf("Notification %d deleted\n", n.ID)
	return nil
}

type NotificationsWatchCmd struct {
	ClientFlags
	Interval time.Duration `help:"Poll interval" default:"30s"`
}

// Run polls the notification list, printing entries it has not shown
// before. Transient fetch failures back off exponentially; a 401 ends the
// watch since the session is gone.
func (n *NotificationsWatchCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, n.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireAuth(app); err != nil {
		return err
	}

	fmt.Printf("Watching for notifications every %s (ctrl-c to stop)\n", n.Interval)

	seen := make(map[int64]bool)
	retry := backoff.NewExponentialBackOff()

	for {
		notifications, err := app.API.Notifications(ctx)
		if err != nil {
			if client.IsUnauthorized(err) {
				return err
			}

			wait := retry.NextBackOff()
			log.Warn().Err(err).Dur("retry_in", wait).Msg("failed to fetch notifications")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			continue
		}
		retry.Reset()

		for _, notification := range notifications {
			if seen[notification.ID] {
				continue
			}
			seen[notification.ID] = true
			printNotification(notification)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(n.Interval):
		}
	}
}

func printNotification(n client.Notification) {
	marker := " "
	if !n.IsRead {
		marker = "*"
	}
	fmt.Printf("%s [%d] %s: %s (%s)\n", marker, n.ID, n.Title, n.Message, n.CreatedAt)
}
