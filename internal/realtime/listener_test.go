package realtime

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/mockapi"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/screen"
	apperrors "github.com/masterchefhck/transportdf-mvp-sub001/pkg/errors"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/logger"
	ws "github.com/masterchefhck/transportdf-mvp-sub001/pkg/websocket"
)

type countingRefresher struct {
	calls atomic.Int32
}

func (c *countingRefresher) Refresh() error {
	c.calls.Add(1)
	return nil
}

// busyRefresher rejects refreshes with screen.ErrInFlight while busy is set.
type busyRefresher struct {
	busy      atomic.Bool
	attempts  atomic.Int32
	completed atomic.Int32
}

func (b *busyRefresher) Refresh() error {
	b.attempts.Add(1)
	if b.busy.Load() {
		return screen.ErrInFlight
	}
	b.completed.Add(1)
	return nil
}

func newServer(t *testing.T) (string, *mockapi.Store, *ws.Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := mockapi.NewStore()
	require.NoError(t, mockapi.Seed(store))
	hub := ws.NewHub(logger.NewNop())
	go hub.Run()
	t.Cleanup(hub.Stop)

	srv := httptest.NewServer(mockapi.NewRouter(mockapi.NewHandlers(store, logger.NewNop(), hub), nil))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws", store, hub
}

// TestListener_RefreshesOnEvents tests that dashboard events trigger a refresh
func TestListener_RefreshesOnEvents(t *testing.T) {
	url, store, hub := newServer(t)
	token, _, err := store.Login(mockapi.SeedAdminEmail, mockapi.SeedPassword)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	target := &countingRefresher{}
	done := make(chan error, 1)
	go func() {
		done <- NewListener(Config{URL: url, ReconnectDelay: 10 * time.Millisecond}, logger.NewNop()).Run(ctx, token, target)
	}()

	require.Eventually(t, func() bool { return hub.Subscribers("admin") == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish("admin", ws.Message{Type: "chat_message"})
	hub.Publish("admin", ws.Message{Type: ws.EventTripCompleted, Data: map[string]string{"trip_id": "trip-04"}})
	require.Eventually(t, func() bool { return target.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop")
	}
}

// TestListener_EventDuringLoad tests that an event arriving while a load is
// running is refreshed once that load settles
func TestListener_EventDuringLoad(t *testing.T) {
	url, store, hub := newServer(t)
	token, _, err := store.Login(mockapi.SeedAdminEmail, mockapi.SeedPassword)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	target := &busyRefresher{}
	target.busy.Store(true)
	cfg := Config{URL: url, ReconnectDelay: 10 * time.Millisecond, RetryDelay: 10 * time.Millisecond}
	go NewListener(cfg, logger.NewNop()).Run(ctx, token, target)

	require.Eventually(t, func() bool { return hub.Subscribers("admin") == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish("admin", ws.Message{Type: ws.EventTripCompleted, Data: map[string]string{"trip_id": "trip-04"}})
	require.Eventually(t, func() bool { return target.attempts.Load() >= 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(0), target.completed.Load())

	target.busy.Store(false)
	require.Eventually(t, func() bool { return target.completed.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), target.completed.Load())
}

// TestListener_RejectedToken tests that an invalid token stops the listener
func TestListener_RejectedToken(t *testing.T) {
	url, _, _ := newServer(t)

	err := NewListener(Config{URL: url}, logger.NewNop()).Run(context.Background(), "forged", &countingRefresher{})

	require.Error(t, err)
	assert.True(t, apperrors.IsSessionInvalid(err))
}

// TestListener_InvalidURL tests endpoint validation
func TestListener_InvalidURL(t *testing.T) {
	err := NewListener(Config{URL: "http://example.com/ws"}, logger.NewNop()).Run(context.Background(), "t", &countingRefresher{})
	assert.Error(t, err)
}
