package commands

import (
	"context"
	"fmt"

	"github.com/yavijexpress/rideshare-cli/internal/client"
	"github.com/yavijexpress/rideshare-cli/internal/session"
)

type VehiclesCmd struct {
	List   VehiclesListCmd   `cmd:"" help:"List your registered vehicles"`
	Add    VehiclesAddCmd    `cmd:"" help:"Register a vehicle"`
	Update VehiclesUpdateCmd `cmd:"" help:"Update a registered vehicle"`
	Remove VehiclesRemoveCmd `cmd:"" help:"Remove a registered vehicle"`
}

type VehiclesListCmd struct {
	ClientFlags
}

func (v *VehiclesListCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, v.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireRoles(app, session.RoleDriver); err != nil {
		return err
	}

	vehicles, err := app.API.UserVehicles(ctx, currentSession(app).UserID)
	if err != nil {
		return fmt.Errorf("failed to list vehicles: %w", err)
	}

	if len(vehicles) == 0 {
		fmt.Println("No vehicles registered")
		return nil
	}

	fmt.Printf("%-8s %-14s %-20s %-10s %-6s %s\n", "ID", "Number", "Model", "Type", "Seats", "Color")
	for _, vehicle := range vehicles {
		fmt.Printf("%-8d %-14s %-20s %-10s %-6d %s\n",
			vehicle.ID, vehicle.VehicleNumber, truncate(vehicle.Model, 20),
			vehicle.VehicleType, vehicle.TotalSeats, vehicle.Color)
	}
	return nil
}

// vehicleFlags are shared by add and update.
type vehicleFlags struct {
	Number    string `help:"Registration plate number" required:""`
	Model     string `help:"Vehicle model" required:""`
	Color     string `help:"Vehicle color" required:""`
	Seats     int    `help:"Total seats" required:""`
	Insurance string `help:"Insurance policy number" required:""`
	Expiry    string `help:"Insurance expiry (YYYY-MM-DDTHH:MM:SS)"`
	Type      string `help:"Vehicle type" default:"CAR" enum:"CAR,BIKE,VAN,SUV"`
}

func (f vehicleFlags) request() client.VehicleRequest {
	return client.VehicleRequest{
		VehicleNumber:   f.Number,
		Model:           f.Model,
		Color:           f.Color,
		TotalSeats:      f.Seats,
		InsuranceNumber: f.Insurance,
		InsuranceExpiry: f.Expiry,
		VehicleType:     f.Type,
	}
}

type VehiclesAddCmd struct {
	ClientFlags
	vehicleFlags
}

func (v *VehiclesAddCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, v.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireRoles(app, session.RoleDriver); err != nil {
		return err
	}

	vehicle, err := app.API.CreateVehicle(ctx, v.request())
	if err != nil {
		return fmt.Errorf("failed to register vehicle: %w", err)
	}

	fmt.Printf("Vehicle %d registered: %s %s\n", vehicle.ID, vehicle.Model, vehicle.VehicleNumber)
	return nil
}

type VehiclesUpdateCmd struct {
	ClientFlags
	ID int64 `arg:"" help:"Vehicle id"`
	vehicleFlags
}

func (v *VehiclesUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, v.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireRoles(app, session.RoleDriver); err != nil {
		return err
	}

	vehicle, err := app.API.UpdateVehicle(ctx, v.ID, v.request())
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	fmt.Printf("Vehicle %d updated\n", vehicle.ID)
	return nil
}

type VehiclesRemoveCmd struct {
	ClientFlags
	ID int64 `arg:"" help:"Vehicle id"`
}

func (v *VehiclesRemoveCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, v.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireRoles(app, session.RoleDriver); err != nil {
		return err
	}

	if err := app.API.DeleteVehicle(ctx, v.ID); err != nil {
		return fmt.Errorf("failed to remove vehicle: %w", err)
	}

	fmt.Printf("Vehicle %d removed\n", v.ID)
	return nil
}
