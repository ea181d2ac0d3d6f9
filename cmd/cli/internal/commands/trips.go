package commands

import (
	"context"
	"fmt"

	"github.com/yavijexpress/rideshare-cli/internal/client"
	"github.com/yavijexpress/rideshare-cli/internal/session"
)

type TripsCmd struct {
	Search   TripsSearchCmd   `cmd:"" help:"Search published trips"`
	Upcoming TripsUpcomingCmd `cmd:"" help:"List trips departing soon"`
	Create   TripsCreateCmd   `cmd:"" help:"Publish a new trip (drivers)"`
	Mine     TripsMineCmd     `cmd:"" help:"List your published trips (drivers)"`
	Start    TripsStartCmd    `cmd:"" help:"Start a trip (drivers)"`
	Complete TripsCompleteCmd `cmd:"" help:"Complete a trip (drivers)"`
}

type TripsSearchCmd struct {
	ClientFlags
	From  string  `help:"Departure location"`
	To    string  `help:"Destination location"`
	Date  string  `help:"Departure date (YYYY-MM-DD)"`
	Seats int     `help:"Seats required" default:"1"`
	Price float64 `help:"Maximum price per seat"`
}

func (t *TripsSearchCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, t.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireAuth(app); err != nil {
		return err
	}

	req := client.TripSearchRequest{
		FromLocation:  t.From,
		ToLocation:    t.To,
		DepartureDate: t.Date,
		RequiredSeats: t.Seats,
	}
	if t.Price > 0 {
		req.MaxPrice = &t.Price
	}

	trips, err := app.API.SearchTrips(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to search trips: %w", err)
	}

	printTrips(trips)
	return nil
}

type TripsUpcomingCmd struct {
	ClientFlags
}

func (t *TripsUpcomingCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, t.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireAuth(app); err != nil {
		return err
	}

	trips, err := app.API.UpcomingTrips(ctx)
	if err != nil {
		return fmt.Errorf("failed to list upcoming trips: %w", err)
	}

	printTrips(trips)
	return nil
}

type TripsCreateCmd struct {
	ClientFlags
	From      string  `help:"Departure location" required:""`
	To        string  `help:"Destination location" required:""`
	Departure string  `help:"Departure time (YYYY-MM-DDTHH:MM:SS)" required:""`
	Arrival   string  `help:"Expected arrival time"`
	Price     float64 `help:"Price per seat" required:""`
	Seats     int     `help:"Total seats offered" required:""`
	Vehicle   int64   `help:"Vehicle id" required:""`
	Flexible  bool    `help:"Departure time is flexible"`
	Notes     string  `help:"Free-form notes for passengers"`
}

func (t *TripsCreateCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, t.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireRoles(app, session.RoleDriver); err != nil {
		return err
	}

	trip, err := app.API.CreateTrip(ctx, client.TripRequest{
		FromLocation:        t.From,
		ToLocation:          t.To,
		DepartureTime:       t.Departure,
		ExpectedArrivalTime: t.Arrival,
		PricePerSeat:        t.Price,
		TotalSeats:          t.Seats,
		VehicleID:           t.Vehicle,
		IsFlexible:          t.Flexible,
		Notes:               t.Notes,
	})
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}

	fmt.Printf("Trip %d published: %s -> %s at %s\n", trip.ID, trip.FromLocation, trip.ToLocation, trip.DepartureTime)
	return nil
}

type TripsMineCmd struct {
	ClientFlags
}

func (t *TripsMineCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, t.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireRoles(app, session.RoleDriver); err != nil {
		return err
	}

	trips, err := app.API.DriverTrips(ctx, currentSession(app).UserID)
	if err != nil {
		return fmt.Errorf("failed to list trips: %w", err)
	}

	printTrips(trips)
	return nil
}

type TripsStartCmd struct {
	ClientFlags
	ID int64 `arg:"" help:"Trip id"`
}

func (t *TripsStartCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, t.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireRoles(app, session.RoleDriver); err != nil {
		return err
	}

	trip, err := app.API.StartTrip(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("failed to start trip: %w", err)
	}

	fmt.Printf("Trip %d is now %s\n", trip.ID, trip.Status)
	return nil
}

type TripsCompleteCmd struct {
	ClientFlags
	ID int64 `arg:"" help:"Trip id"`
}

func (t *TripsCompleteCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, t.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireRoles(app, session.RoleDriver); err != nil {
		return err
	}

	trip, err := app.API.CompleteTrip(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("failed to complete trip: %w", err)
	}

	fmt.Printf("Trip %d is now %s\n", trip.ID, trip.Status)
	return nil
}

func printTrips(trips []client.Trip) {
	if len(trips) == 0 {
		fmt.Println("No trips found")
		return
	}

	fmt.Printf("%-8s %-20s %-20s %-20s %-8s %-6s %s\n", "ID", "From", "To", "Departure", "Price", "Seats", "Driver")
	for _, trip := range trips {
		fmt.Printf("%-8d %-20s %-20s %-20s %-8.2f %-6d %s\n",
			trip.ID,
			truncate(trip.FromLocation, 20),
			truncate(trip.ToLocation, 20),
			trip.DepartureTime,
			trip.PricePerSeat,
			trip.AvailableSeats,
			trip.DriverName)
	}
	fmt.Printf("\nTotal trips: %d\n", len(trips))
}

func truncate(s string, n int) string {
	// Rune-based so location names never get cut mid-character.
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
