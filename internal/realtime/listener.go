package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/screen"
	apperrors "github.com/masterchefhck/transportdf-mvp-sub001/pkg/errors"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/logger"
	ws "github.com/masterchefhck/transportdf-mvp-sub001/pkg/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 90 * time.Second
	maxMessageSize = 4 << 10
)

// Refresher is a mounted screen that can reload its data
type Refresher interface {
	Refresh() error
}

// Config holds listener configuration
type Config struct {
	URL            string
	ReconnectDelay time.Duration
	// RetryDelay is how often a pending event retries while the target is
	// still busy with an earlier load.
	RetryDelay time.Duration
}

// Listener subscribes to backend push events and turns them into screen
// refreshes. It never writes screen state itself.
type Listener struct {
	cfg    Config
	dialer *websocket.Dialer
	logger *logger.Logger
}

// NewListener creates a new realtime listener
func NewListener(cfg Config, log *logger.Logger) *Listener {
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = 5 * time.Second
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 250 * time.Millisecond
	}
	return &Listener{
		cfg: cfg,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
		logger: log.Named("realtime"),
	}
}

// Run keeps a subscription open until ctx ends. A rejected token stops it
// with an Unauthorized error; other failures are retried after a delay.
func (l *Listener) Run(ctx context.Context, token string, target Refresher) error {
	endpoint, err := l.endpoint(token)
	if err != nil {
		return err
	}

	refresh := make(chan struct{}, 1)
	go l.refreshLoop(ctx, target, refresh)

	for {
		conn, resp, err := l.dialer.DialContext(ctx, endpoint, nil)
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		switch {
		case ctx.Err() != nil:
			if conn != nil {
				conn.Close()
			}
			return ctx.Err()
		case err != nil && resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden):
			return apperrors.FromStatus(resp.StatusCode, "realtime subscription rejected")
		case err != nil:
			l.logger.Warn("Failed to connect, retrying", logger.Err(err), logger.Duration("delay", l.cfg.ReconnectDelay))
		default:
			l.logger.Info("Subscribed to backend events")
			if err := l.listen(ctx, conn, refresh); err != nil && ctx.Err() == nil {
				l.logger.Warn("Subscription dropped", logger.Err(err))
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.cfg.ReconnectDelay):
		}
	}
}

func (l *Listener) endpoint(token string) (string, error) {
	u, err := url.Parse(l.cfg.URL)
	if err != nil || (u.Scheme != "ws" && u.Scheme != "wss") {
		return "", fmt.Errorf("invalid realtime URL %q", l.cfg.URL)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (l *Listener) listen(ctx context.Context, conn *websocket.Conn, refresh chan<- struct{}) error {
	stop := context.AfterFunc(ctx, func() {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		conn.Close()
	})
	defer func() {
		if stop() {
			conn.Close()
		}
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(data string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		err := conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(writeWait))
		if errors.Is(err, websocket.ErrCloseSent) {
			return nil
		}
		return err
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg ws.Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			l.logger.Warn("Failed to unmarshal event")
			continue
		}

		switch msg.Type {
		case ws.EventTripCompleted, ws.EventStatsChanged:
			l.logger.Debug("Event received", logger.String("type", msg.Type))
			select {
			case refresh <- struct{}{}:
			default:
				// a refresh is already queued
			}
		}
	}
}

// refreshLoop runs one refresh at a time; events arriving meanwhile collapse into one.
func (l *Listener) refreshLoop(ctx context.Context, target Refresher, refresh <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-refresh:
			l.refreshWhenIdle(ctx, target)
		}
	}
}

// refreshWhenIdle keeps the event pending while a load issued before it is
// still running, so the screen always ends on data fetched after the event.
func (l *Listener) refreshWhenIdle(ctx context.Context, target Refresher) {
	for {
		err := target.Refresh()
		if !errors.Is(err, screen.ErrInFlight) {
			if err != nil {
				l.logger.Debug("Event refresh did not complete", logger.Err(err))
			}
			return
		}

		timer := time.NewTimer(l.cfg.RetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
