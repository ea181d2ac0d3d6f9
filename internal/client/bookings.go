package client

import (
	"context"
	"fmt"
)

// CreateBooking reserves seats on a trip for the authenticated passenger.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (*Booking, error) {
	var out Booking
	if err := c.post(ctx, "/api/bookings", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelBooking cancels a booking.
func (c *Client) CancelBooking(ctx context.Context, bookingID int64) error {
	return c.post(ctx, fmt.Sprintf("/api/bookings/%d/cancel", bookingID), nil, nil)
}

// PassengerBookings returns the bookings made by the given passenger.
func (c *Client) PassengerBookings(ctx context.Context, passengerID int64) ([]Booking, error) {
	var out []Booking
	if err := c.get(ctx, fmt.Sprintf("/api/bookings/passenger/%d", passengerID), &out); err != nil {
		return nil, err
	}
	return out, nil
}
