package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sbilibin2017/gw-chat/internal/logger"
	"github.com/sbilibin2017/gw-chat/internal/models"
)

// ErrHubStopped is returned when publishing to a hub whose loop has exited.
var ErrHubStopped = errors.New("websocket hub stopped")

type delivery struct {
	userIDs []string
	frame   []byte
}

// Hub keeps the connected clients grouped by user id and routes
// notifications to the participants of a message.
type Hub struct {
	// Connected clients per user id.
	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	deliveries chan delivery
	done       chan struct{}
}

// NewHub creates a new Hub. Run must be started before clients register.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliveries: make(chan delivery),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and deliveries until ctx is cancelled.
// On exit every client's send queue is closed.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for userID, set := range h.clients {
				for c := range set {
					close(c.Send)
				}
				delete(h.clients, userID)
			}
			logger.Log.Infow("websocket hub stopped")
			return

		case c := <-h.register:
			if h.clients[c.UserID] == nil {
				h.clients[c.UserID] = make(map[*Client]bool)
			}
			h.clients[c.UserID][c] = true
			logger.Log.Infow("websocket client connected",
				"user_id", c.UserID, "user_clients", len(h.clients[c.UserID]))

		case c := <-h.unregister:
			if h.remove(c) {
				logger.Log.Infow("websocket client disconnected", "user_id", c.UserID)
			}

		case d := <-h.deliveries:
			for _, userID := range d.userIDs {
				for c := range h.clients[userID] {
					select {
					case c.Send <- d.frame:
					default:
						h.remove(c)
						logger.Log.Warnw("websocket client dropped, send queue full", "user_id", userID)
					}
				}
			}
		}
	}
}

// remove drops a client and closes its send queue. It reports whether the client was registered.
func (h *Hub) remove(c *Client) bool {
	set, ok := h.clients[c.UserID]
	if !ok || !set[c] {
		return false
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.UserID)
	}
	close(c.Send)
	return true
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) error {
	select {
	case h.register <- c:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// Unregister removes a client from the hub. Unknown clients are ignored.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish sends a {"channel","event","data"} frame to the clients of the
// sender and of the receiver.
func (h *Hub) Publish(ctx context.Context, channel, event string, n models.Notification) error {
	frame, err := json.Marshal(models.PushEvent{Channel: channel, Event: event, Data: n})
	if err != nil {
		return err
	}

	userIDs := []string{n.SenderID}
	if n.ReceiverID != n.SenderID {
		userIDs = append(userIDs, n.ReceiverID)
	}

	select {
	case h.deliveries <- delivery{userIDs: userIDs, frame: frame}:
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}
