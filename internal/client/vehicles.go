package client

import (
	"context"
	"fmt"
)

// UserVehicles returns the vehicles registered by a driver.
func (c *Client) UserVehicles(ctx context.Context, userID int64) ([]Vehicle, error) {
	var out []Vehicle
	if err := c.get(ctx, fmt.Sprintf("/api/vehicles/user/%d", userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateVehicle registers a new vehicle for the authenticated driver.
func (c *Client) CreateVehicle(ctx context.Context, req VehicleRequest) (*Vehicle, error) {
	var out Vehicle
	if err := c.post(ctx, "/api/vehicles", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateVehicle updates a registered vehicle.
func (c *Client) UpdateVehicle(ctx context.Context, id int64, req VehicleRequest) (*Vehicle, error) {
	var out Vehicle
	if err := c.put(ctx, fmt.Sprintf("/api/vehicles/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteVehicle removes a registered vehicle.
func (c *Client) DeleteVehicle(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/vehicles/%d", id))
}
