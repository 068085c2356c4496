package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/user"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/logger"
)

// Persisted key names. Both are written together at login and cleared together at logout.
const (
	KeyAccessToken = "access_token"
	KeyUser        = "user"
)

var (
	// ErrNoSession means nothing usable is stored: either key missing, or storage unreadable.
	ErrNoSession = errors.New("no session")
	// ErrCorruptSession means both keys exist but the user record does not decode.
	ErrCorruptSession = errors.New("corrupt session")
	ErrEmptyToken     = errors.New("empty access token")
)

// Session is the persisted (token, user) pair identifying the current actor.
type Session struct {
	Token string
	User  user.User
}

// Store persists the raw key pair on the device. Implementations must make
// Save and Clear atomic over both keys. Missing keys load as "".
type Store interface {
	Load(ctx context.Context) (token, userJSON string, err error)
	Save(ctx context.Context, token, userJSON string) error
	Clear(ctx context.Context) error
	Close() error
}

// Accessor is what screens use. It decodes the pair and fails open: storage
// errors are logged and reported as ErrNoSession.
type Accessor struct {
	store  Store
	logger *logger.Logger
}

// NewAccessor creates a new session accessor
func NewAccessor(store Store, log *logger.Logger) *Accessor {
	return &Accessor{
		store:  store,
		logger: log.Named("session"),
	}
}

// Read returns the stored session, ErrNoSession or ErrCorruptSession.
func (a *Accessor) Read(ctx context.Context) (*Session, error) {
	token, raw, err := a.store.Load(ctx)
	if err != nil {
		a.logger.Warn("Failed to read session, treating as absent", logger.Err(err))
		return nil, ErrNoSession
	}
	if token == "" || raw == "" {
		return nil, ErrNoSession
	}

	var u user.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		a.logger.Warn("Stored user record does not decode", logger.Err(err))
		return nil, ErrCorruptSession
	}

	return &Session{Token: token, User: u}, nil
}

// Write persists token and user as one unit.
func (a *Accessor) Write(ctx context.Context, token string, u user.User) error {
	if token == "" {
		return ErrEmptyToken
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := a.store.Save(ctx, token, string(raw)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	a.logger.Info("Session saved",
		logger.String("user_id", u.ID),
		logger.String("user_type", string(u.UserType)),
	)
	return nil
}

// Clear removes both keys.
func (a *Accessor) Clear(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	a.logger.Info("Session cleared")
	return nil
}
