package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/yavijexpress/rideshare-cli/cmd/cli/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Login         commands.LoginCmd         `cmd:"" help:"Log in and store a session"`
		Logout        commands.LogoutCmd        `cmd:"" help:"Log out and clear the stored session"`
		Register      commands.RegisterCmd      `cmd:"" help:"Register a new account"`
		VerifyOtp     commands.VerifyOTPCmd     `cmd:"" name:"verify-otp" help:"Verify the registration OTP"`
		Whoami        commands.WhoamiCmd        `cmd:"" help:"Show who is logged in"`
		Session       commands.SessionCmd       `cmd:"" help:"Inspect and refresh the stored session"`
		Profile       commands.ProfileCmd       `cmd:"" help:"View and update the account profile"`
		Trips         commands.TripsCmd         `cmd:"" help:"Search and manage trips"`
		Bookings      commands.BookingsCmd      `cmd:"" help:"Manage seat bookings"`
		Payments      commands.PaymentsCmd      `cmd:"" help:"View payments and settle bookings"`
		Notifications commands.NotificationsCmd `cmd:"" help:"View notifications"`
		Emergency     commands.EmergencyCmd     `cmd:"" help:"Send emergency alerts"`
		Vehicles      commands.VehiclesCmd      `cmd:"" help:"Manage driver vehicles"`
		Admin         commands.AdminCmd         `cmd:"" help:"Administrative operations"`
		Debug         bool                      `help:"Enable debug mode."`
		Version       kong.VersionFlag
	}
)

func main() {
	// Local development convenience; missing .env files are fine.
	_ = godotenv.Load()

	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
