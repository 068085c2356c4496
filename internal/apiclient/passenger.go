package apiclient

import (
	"context"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/trip"
)

const PathPassengerTripHistory = "/api/passengers/trip-history"

// PassengerTripHistory handles GET /api/passengers/trip-history
func (c *Client) PassengerTripHistory(ctx context.Context, token string) ([]trip.HistoryEntry, error) {
	entries := []trip.HistoryEntry{}
	if err := c.Get(ctx, PathPassengerTripHistory, token, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
