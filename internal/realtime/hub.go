package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/yukikurage/retro-board-api/internal/events"
	"github.com/yukikurage/retro-board-api/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBuffer     = 64
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

type client struct {
	conn    *websocket.Conn
	send    chan []byte
	channel string
}

// Hub is the self-hosted stream: it keeps the websocket clients of this
// process grouped by board channel.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*client]struct{}
	closed   bool
	log      *zap.Logger
	metrics  *metrics.Metrics
}

func NewHub(log *zap.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		channels: make(map[string]map[*client]struct{}),
		log:      log,
		metrics:  m,
	}
}

// ClientCount returns the number of clients subscribed to channel.
func (h *Hub) ClientCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

// Broadcast queues message for every client of channel. A client whose
// buffer is full is disconnected.
func (h *Hub) Broadcast(channel string, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.channels[channel] {
		select {
		case c.send <- message:
		default:
			h.log.Warn("Dropping slow stream client", zap.String("channel", channel))
			h.removeLocked(c)
		}
	}
}

// ServeBoard upgrades the request and streams the board's events until the
// client goes away.
func (h *Hub) ServeBoard(w http.ResponseWriter, r *http.Request, boardID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		channel: events.ChannelName(boardID),
	}
	if !h.register(c) {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeWait))
		conn.Close()
		return nil
	}

	go h.writePump(c)
	go h.readPump(c)
	return nil
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for _, clients := range h.channels {
		for c := range clients {
			h.removeLocked(c)
		}
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	if h.channels[c.channel] == nil {
		h.channels[c.channel] = make(map[*client]struct{})
	}
	h.channels[c.channel][c] = struct{}{}
	h.metrics.StreamOpened()
	h.log.Debug("Stream client registered", zap.String("channel", c.channel))
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

// removeLocked closes c.send exactly once: only the caller that finds c in
// the map closes it.
func (h *Hub) removeLocked(c *client) {
	clients, ok := h.channels[c.channel]
	if !ok {
		return
	}
	if _, exists := clients[c]; !exists {
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.channels, c.channel)
	}
	h.metrics.StreamClosed()
}

// readPump only watches for pongs and the close frame; clients do not send events.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn("Stream read error", zap.String("channel", c.channel), zap.Error(err))
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// HubTransport delivers events to the clients of the local Hub.
type HubTransport struct {
	hub *Hub
}

func NewHubTransport(hub *Hub) *HubTransport {
	return &HubTransport{hub: hub}
}

func (t *HubTransport) Name() string {
	return "stream"
}

func (t *HubTransport) Trigger(ctx context.Context, channel string, event events.Name, payload any) error {
	message, err := encodeEnvelope(event, payload)
	if err != nil {
		return err
	}
	t.hub.Broadcast(channel, message)
	return nil
}

func encodeEnvelope(event events.Name, payload any) ([]byte, error) {
	envelope, err := events.NewEnvelope(event, payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope)
}
