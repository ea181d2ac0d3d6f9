package client

import (
	"context"
	"fmt"
)

// BookingPayment returns the payment recorded for a booking.
func (c *Client) BookingPayment(ctx context.Context, bookingID int64) (*Payment, error) {
	var out Payment
	if err := c.get(ctx, fmt.Sprintf("/api/payments/booking/%d", bookingID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserPayments returns the payment history for a user.
func (c *Client) UserPayments(ctx context.Context, userID int64) ([]Payment, error) {
	var out []Payment
	if err := c.get(ctx, fmt.Sprintf("/api/payments/user/%d", userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PayCash records a cash settlement for a booking.
func (c *Client) PayCash(ctx context.Context, bookingID int64) (*Payment, error) {
	var out Payment
	if err := c.post(ctx, fmt.Sprintf("/api/payments/cash/%d", bookingID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
