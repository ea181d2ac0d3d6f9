package client

import (
	"context"
	"fmt"
)

// SearchTrips returns published trips matching the filter.
func (c *Client) SearchTrips(ctx context.Context, req TripSearchRequest) ([]Trip, error) {
	var out []Trip
	if err := c.post(ctx, "/api/trips/search", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpcomingTrips returns trips departing soon.
func (c *Client) UpcomingTrips(ctx context.Context) ([]Trip, error) {
	var out []Trip
	if err := c.get(ctx, "/api/trips/upcoming", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTrip publishes a new trip for the authenticated driver.
func (c *Client) CreateTrip(ctx context.Context, req TripRequest) (*Trip, error) {
	var out Trip
	if err := c.post(ctx, "/api/trips", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DriverTrips returns the trips published by the given driver.
func (c *Client) DriverTrips(ctx context.Context, driverID int64) ([]Trip, error) {
	var out []Trip
	if err := c.get(ctx, fmt.Sprintf("/api/trips/driver/%d", driverID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StartTrip marks a trip as in progress.
func (c *Client) StartTrip(ctx context.Context, tripID int64) (*Trip, error) {
	var out Trip
	if err := c.post(ctx, fmt.Sprintf("/api/trips/%d/start", tripID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteTrip marks a trip as finished.
func (c *Client) CompleteTrip(ctx context.Context, tripID int64) (*Trip, error) {
	var out Trip
	if err := c.post(ctx, fmt.Sprintf("/api/trips/%d/complete", tripID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
