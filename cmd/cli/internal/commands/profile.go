package commands

import (
	"context"
	"fmt"

	"github.com/yavijexpress/rideshare-cli/internal/session"
)

type ProfileCmd struct {
	Show           ProfileShowCmd           `cmd:"" help:"Show the account profile"`
	Update         ProfileUpdateCmd         `cmd:"" help:"Update name or email in the local session"`
	ChangePassword ProfileChangePasswordCmd `cmd:"" name:"change-password" help:"Change the account password"`
}

type ProfileShowCmd struct {
	ClientFlags
}

func (p *ProfileShowCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, p.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireAuth(app); err != nil {
		return err
	}

	profile, err := app.API.Profile(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	fmt.Printf("%s <%s>\n", profile.Name, profile.Email)
	fmt.Printf("  id:       %d\n", profile.ID)
	fmt.Printf("  mobile:   %s\n", profile.Mobile)
	fmt.Printf("  role:     %s\n", profile.Role)
	fmt.Printf("  verified: %s\n", profile.VerificationStatus)
	if profile.AvgRating != nil {
		fmt.Printf("  rating:   %.1f\n", *profile.AvgRating)
	}
	if profile.TotalRides != nil {
		fmt.Printf("  rides:    %d\n", *profile.TotalRides)
	}
	return nil
}

type ProfileUpdateCmd struct {
	ClientFlags
	Name  string `help:"New display name"`
	Email string `help:"New email address"`
}

func (p *ProfileUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, p.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireAuth(app); err != nil {
		return err
	}

	if p.Name == "" && p.Email == "" {
		return fmt.Errorf("nothing to update: set --name or --email")
	}

	var update session.ProfileUpdate
	if p.Name != "" {
		update.Name = &p.Name
	}
	if p.Email != "" {
		update.Email = &p.Email
	}

	if err := app.Controller.UpdateProfile(update); err != nil {
		return err
	}

	fmt.Println("Profile updated")
	return nil
}

type ProfileChangePasswordCmd struct {
	ClientFlags
	Old string `help:"Current password" required:""`
	New string `help:"New password (min 8 characters)" required:""`
}

func (p *ProfileChangePasswordCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, p.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireAuth(app); err != nil {
		return err
	}

	if err := app.API.ChangePassword(ctx, p.Old, p.New); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	fmt.Println("Password changed")
	return nil
}
