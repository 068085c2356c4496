package apiclient

import (
	"context"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/user"
	apperrors "github.com/masterchefhck/transportdf-mvp-sub001/pkg/errors"
)

const (
	PathLogin    = "/api/auth/login"
	PathRegister = "/api/auth/register"
)

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a new account
type RegisterRequest struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone,omitempty"`
	Password string    `json:"password"`
	UserType user.Type `json:"user_type"`
}

// AuthResponse is returned by both login and register
type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type,omitempty"`
	User        user.User `json:"user"`
}

// Login handles POST /api/auth/login
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.Post(ctx, PathLogin, "", req, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, apperrors.Internal("login response without access token", nil)
	}
	return &resp, nil
}

// Register handles POST /api/auth/register
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if !req.UserType.IsValid() {
		return nil, apperrors.BadRequest("invalid user type", user.ErrInvalidUserType)
	}
	var resp AuthResponse
	if err := c.Post(ctx, PathRegister, "", req, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, apperrors.Internal("register response without access token", nil)
	}
	return &resp, nil
}
