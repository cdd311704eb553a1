package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yukikurage/retro-board-api/internal/events"
)

func startHubServer(t *testing.T, hub *Hub) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		boardID := strings.TrimPrefix(r.URL.Path, "/boards/")
		hub.ServeBoard(w, r, boardID)
	}))
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func dialBoard(t *testing.T, base, boardID string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(base+"/boards/"+boardID, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubTransport_StreamsEnvelope(t *testing.T) {
	m := newTestMetrics()
	hub := NewHub(zap.NewNop(), m)
	base := startHubServer(t, hub)

	conn := dialBoard(t, base, "b1")
	other := dialBoard(t, base, "b2")
	require.Eventually(t, func() bool {
		return hub.ClientCount(events.ChannelName("b1")) == 1 && hub.ClientCount(events.ChannelName("b2")) == 1
	}, time.Second, 5*time.Millisecond)

	b := NewBroadcaster(zap.NewNop(), m, false, NewHubTransport(hub))
	delivered := b.Publish(context.Background(), "b1", events.CardDeleted, events.CardDeletedPayload{CardID: "c1"})
	assert.True(t, delivered)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var envelope events.Envelope
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, events.CardDeleted, envelope.Event)
	assert.JSONEq(t, `{"cardId":"c1","initiatorId":null}`, string(envelope.Data))

	other.SetReadDeadline(time.Now().Add(50 * time.Millisecond))
	_, _, err = other.ReadMessage()
	assert.Error(t, err)
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	hub := NewHub(zap.NewNop(), newTestMetrics())
	base := startHubServer(t, hub)

	conn := dialBoard(t, base, "b1")
	channel := events.ChannelName("b1")
	require.Eventually(t, func() bool { return hub.ClientCount(channel) == 1 }, time.Second, 5*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount(channel) == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub := NewHub(zap.NewNop(), newTestMetrics())
	base := startHubServer(t, hub)

	conn := dialBoard(t, base, "b1")
	require.Eventually(t, func() bool { return hub.ClientCount(events.ChannelName("b1")) == 1 }, time.Second, 5*time.Millisecond)

	hub.Close()
	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Zero(t, hub.ClientCount(events.ChannelName("b1")))
}

func TestRedisRelay_ForwardsPrefixedChannels(t *testing.T) {
	hub := NewHub(zap.NewNop(), newTestMetrics())
	base := startHubServer(t, hub)
	conn := dialBoard(t, base, "b1")
	channel := events.ChannelName("b1")
	require.Eventually(t, func() bool { return hub.ClientCount(channel) == 1 }, time.Second, 5*time.Millisecond)

	relay := NewRedisRelay(nil, hub, zap.NewNop())
	relay.relay("unrelated", "ignored")
	relay.relay(redisPrefix+channel, `{"event":"card:deleted","data":{"cardId":"c1"}}`)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(raw), "card:deleted")
}

func TestRedisTransport_UnreachableServerIsNotDelivered(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	b := NewBroadcaster(zap.NewNop(), newTestMetrics(), false, NewRedisTransport(client))
	assert.False(t, b.Publish(context.Background(), "b1", events.CardCreated, events.CardCreatedPayload{}))
}
