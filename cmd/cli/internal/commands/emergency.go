package commands

import (
	"context"
	"fmt"

	"github.com/yavijexpress/rideshare-cli/internal/client"
)

type EmergencyCmd struct {
	Sos      EmergencySOSCmd      `cmd:"" help:"Raise an SOS alert for a trip"`
	Location EmergencyLocationCmd `cmd:"" help:"Report your live location during a trip"`
}

type EmergencySOSCmd struct {
	ClientFlags
	Trip      int64   `arg:"" help:"Trip id"`
	Message   string  `help:"What is happening" required:""`
	Latitude  float64 `help:"Current latitude"`
	Longitude float64 `help:"Current longitude"`
}

func (e *EmergencySOSCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, e.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireAuth(app); err != nil {
		return err
	}

	req := client.SOSRequest{TripID: e.Trip, Message: e.Message}
	if e.Latitude != 0 || e.Longitude != 0 {
		req.Latitude = &e.Latitude
		req.Longitude = &e.Longitude
	}

	alert, err := app.API.SendSOS(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to send SOS: %w", err)
	}

	fmt.Printf("Alert %d raised (%s): %s\n", alert.AlertID, alert.Status, alert.Message)
	if alert.AuthoritiesNotified {
		fmt.Println("Authorities have been notified")
	}
	return nil
}

type EmergencyLocationCmd struct {
	ClientFlags
	Trip      int64   `arg:"" help:"Trip id"`
	Latitude  float64 `help:"Current latitude" required:""`
	Longitude float64 `help:"Current longitude" required:""`
}

func (e *EmergencyLocationCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, e.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireAuth(app); err != nil {
		return err
	}

	err = app.API.UpdateLiveLocation(ctx, client.LiveLocationRequest{
		TripID:    e.Trip,
		Latitude:  e.Latitude,
		Longitude: e.Longitude,
	})
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}

	fmt.Println("Location reported")
	return nil
}
