package client

import "context"

// SendSOS raises an emergency alert for an in-progress trip.
func (c *Client) SendSOS(ctx context.Context, req SOSRequest) (*EmergencyAlert, error) {
	var out EmergencyAlert
	if err := c.post(ctx, "/api/emergency/sos", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateLiveLocation reports the rider's current position during a trip.
func (c *Client) UpdateLiveLocation(ctx context.Context, req LiveLocationRequest) error {
	return c.post(ctx, "/api/emergency/location", req, nil)
}
