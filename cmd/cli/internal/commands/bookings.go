package commands

import (
	"context"
	"fmt"

	"github.com/yavijexpress/rideshare-cli/internal/client"
	"github.com/yavijexpress/rideshare-cli/internal/session"
)

type BookingsCmd struct {
	List   BookingsListCmd   `cmd:"" help:"List your bookings"`
	Create BookingsCreateCmd `cmd:"" help:"Book seats on a trip"`
	Cancel BookingsCancelCmd `cmd:"" help:"Cancel a booking"`
}

type BookingsListCmd struct {
	ClientFlags
}

func (b *BookingsListCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, b.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireRoles(app, session.RolePassenger); err != nil {
		return err
	}

	bookings, err := app.API.PassengerBookings(ctx, currentSession(app).UserID)
	if err != nil {
		return fmt.Errorf("failed to list bookings: %w", err)
	}

	if len(bookings) == 0 {
		fmt.Println("No bookings found")
		return nil
	}

	fmt.Printf("%-8s %-20s %-20s %-20s %-6s %-10s %-10s %s\n",
		"ID", "From", "To", "Departure", "Seats", "Amount", "Status", "Payment")
	for _, booking := range bookings {
		fmt.Printf("%-8d %-20s %-20s %-20s %-6d %-10.2f %-10s %s\n",
			booking.ID,
			truncate(booking.TripFrom, 20),
			truncate(booking.TripTo, 20),
			booking.DepartureTime,
			booking.SeatsBooked,
			booking.TotalAmount,
			booking.Status,
			booking.PaymentStatus)
	}
	fmt.Printf("\nTotal bookings: %d\n", len(bookings))
	return nil
}

type BookingsCreateCmd struct {
	ClientFlags
	Trip     int64  `arg:"" help:"Trip id to book"`
	Seats    int    `help:"Seats to reserve" default:"1"`
	Requests string `help:"Special requests for the driver"`
}

func (b *BookingsCreateCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, b.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireRoles(app, session.RolePassenger); err != nil {
		return err
	}

	booking, err := app.API.CreateBooking(ctx, client.BookingRequest{
		TripID:          b.Trip,
		Seats:           b.Seats,
		SpecialRequests: b.Requests,
	})
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	fmt.Printf("Booking %d confirmed: %d seat(s), %s -> %s, total %.2f\n",
		booking.ID, booking.SeatsBooked, booking.TripFrom, booking.TripTo, booking.TotalAmount)
	if booking.PickupOTP != "" {
		fmt.Printf("Pickup OTP: %s\n", booking.PickupOTP)
	}
	return nil
}

type BookingsCancelCmd struct {
	ClientFlags
	ID int64 `arg:"" help:"Booking id"`
}

func (b *BookingsCancelCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, b.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireRoles(app, session.RolePassenger); err != nil {
		return err
	}

	if err := app.API.CancelBooking(ctx, b.ID); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	fmt.Printf("Booking %d cancelled\n", b.ID)
	return nil
}
