package apiclient

import (
	"context"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/chat"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/stats"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/trip"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/user"
)

const (
	PathAdminStats = "/api/admin/stats"
	PathAdminUsers = "/api/admin/users"
	PathAdminTrips = "/api/admin/trips"
	PathAdminChats = "/api/admin/chats"
)

// AdminStats handles GET /api/admin/stats
func (c *Client) AdminStats(ctx context.Context, token string) (*stats.Stats, error) {
	var s stats.Stats
	if err := c.Get(ctx, PathAdminStats, token, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// AdminUsers handles GET /api/admin/users
func (c *Client) AdminUsers(ctx context.Context, token string) ([]user.User, error) {
	users := []user.User{}
	if err := c.Get(ctx, PathAdminUsers, token, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AdminTrips handles GET /api/admin/trips. The full list is returned; the
// dashboard truncates it.
func (c *Client) AdminTrips(ctx context.Context, token string) ([]trip.Trip, error) {
	trips := []trip.Trip{}
	if err := c.Get(ctx, PathAdminTrips, token, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// AdminChats handles GET /api/admin/chats
func (c *Client) AdminChats(ctx context.Context, token string) ([]chat.Summary, error) {
	chats := []chat.Summary{}
	if err := c.Get(ctx, PathAdminChats, token, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}
