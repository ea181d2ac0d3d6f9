package commands

import (
	"context"
	"fmt"

	"github.com/yavijexpress/rideshare-cli/internal/session"
)

type AdminCmd struct {
	Stats     AdminStatsCmd     `cmd:"" help:"Show platform-wide statistics"`
	Users     AdminUsersCmd     `cmd:"" help:"List platform users"`
	SetStatus AdminSetStatusCmd `cmd:"" name:"set-status" help:"Activate or deactivate a user"`
}

type AdminStatsCmd struct {
	ClientFlags
}

func (a *AdminStatsCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, a.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireRoles(app, session.RoleAdmin); err != nil {
		return err
	}

	stats, err := app.API.AdminDashboardStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch stats: %w", err)
	}

	fmt.Printf("users:            %d\n", stats.TotalUsers)
	fmt.Printf("active drivers:   %d\n", stats.ActiveDrivers)
	fmt.Printf("trips:            %d\n", stats.TotalTrips)
	fmt.Printf("bookings:         %d\n", stats.TotalBookings)
	fmt.Printf("pending bookings: %d\n", stats.PendingBookings)
	fmt.Printf("revenue:          %.2f\n", stats.TotalRevenue)
	fmt.Printf("messages:         %d\n", stats.TotalMessages)
	return nil
}

type AdminUsersCmd struct {
	ClientFlags
}

func (a *AdminUsersCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, a.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireRoles(app, session.RoleAdmin); err != nil {
		return err
	}

	users, err := app.API.AdminUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	fmt.Printf("%-8s %-24s %-28s %-10s %-10s %s\n", "ID", "Name", "Email", "Role", "Verified", "Active")
	for _, user := range users {
		active := "-"
		if user.IsActive != nil {
			active = fmt.Sprintf("%t", *user.IsActive)
		}
		fmt.Printf("%-8d %-24s %-28s %-10s %-10s %s\n",
			user.ID, truncate(user.Name, 24), truncate(user.Email, 28),
			user.Role, user.VerificationStatus, active)
	}
	fmt.Printf("\nTotal users: %d\n", len(users))
	return nil
}

type AdminSetStatusCmd struct {
	ClientFlags
	ID     int64 `arg:"" help:"User id"`
	Active bool  `help:"Whether the account should be active" negatable:""`
}

func (a *AdminSetStatusCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, a.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireRoles(app, session.RoleAdmin); err != nil {
		return err
	}

	if err := app.API.SetUserStatus(ctx, a.ID, a.Active); err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}

	state := "deactivated"
	if a.Active {
		state = "activated"
	}
	fmt.Printf("User %d %s\n", a.ID, state)
	return nil
}
