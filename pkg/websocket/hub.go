package websocket

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/logger"
)

// Events pushed to dashboard subscribers
const (
	EventTripCompleted = "trip_completed"
	EventStatsChanged  = "stats_changed"
)

// Message is the envelope of every frame sent to subscribers.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Hub groups live connections by audience (the account type of the
// subscriber) and publishes events to one audience at a time.
type Hub struct {
	mu        sync.RWMutex
	audiences map[string]map[*Client]struct{}
	closed    bool
	done      chan struct{}
	logger    *logger.Logger
}

// NewHub creates an empty hub
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		audiences: make(map[string]map[*Client]struct{}),
		done:      make(chan struct{}),
		logger:    log.Named("ws_hub"),
	}
}

// Run blocks until Stop and then disconnects every subscriber.
func (h *Hub) Run() {
	<-h.done

	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for audience, clients := range h.audiences {
		for c := range clients {
			close(c.outbox)
		}
		delete(h.audiences, audience)
	}
}

// Stop ends Run
func (h *Hub) Stop() {
	close(h.done)
}

// Serve subscribes conn to audience and starts its pumps. It returns
// immediately; the connection is dropped from the hub when its reader exits.
func (h *Hub) Serve(conn *websocket.Conn, userID, audience string) *Client {
	c := newClient(h, conn, userID, audience)
	if !h.add(c) {
		conn.Close()
		return c
	}
	go c.writePump()
	go c.readPump()
	return c
}

func (h *Hub) add(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	set, ok := h.audiences[c.Audience]
	if !ok {
		set = make(map[*Client]struct{})
		h.audiences[c.Audience] = set
	}
	set[c] = struct{}{}
	h.logger.Info("Subscriber joined",
		logger.String("client_id", c.ID),
		logger.String("user_id", c.UserID),
		logger.String("audience", c.Audience),
	)
	return true
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.audiences[c.Audience]
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.audiences, c.Audience)
	}
	close(c.outbox)
	h.logger.Info("Subscriber left", logger.String("client_id", c.ID))
}

// Publish sends msg to every subscriber of audience and returns how many
// accepted it. Subscribers with a full outbox miss the event.
func (h *Hub) Publish(audience string, msg Message) int {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("Failed to marshal event", logger.Err(err))
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for c := range h.audiences[audience] {
		select {
		case c.outbox <- data:
			delivered++
		default:
			h.logger.Warn("Subscriber outbox full", logger.String("client_id", c.ID))
		}
	}

	h.logger.Debug("Event published",
		logger.String("type", msg.Type),
		logger.String("audience", audience),
		logger.Int("delivered", delivered),
	)
	return delivered
}

// Subscribers returns the number of live connections for audience.
func (h *Hub) Subscribers(audience string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.audiences[audience])
}
