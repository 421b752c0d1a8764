package live_test

import (
	"Mixtape/services/live"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialHub spins up a websocket endpoint that registers every connection
// with the hub, and returns a connected client.
func dialHub(t *testing.T, hub *live.Hub) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.AddConnection(conn)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	hub := live.NewHub()
	first := dialHub(t, hub)
	second := dialHub(t, hub)

	hub.Broadcast(live.Message{Type: "registration", Data: map[string]int{"total": 5}})

	for _, client := range []*websocket.Conn{first, second} {
		client.SetReadDeadline(time.Now().Add(2 * time.Second))

		var msg live.Message
		require.NoError(t, client.ReadJSON(&msg))
		assert.Equal(t, "registration", msg.Type)
	}
}

func TestBroadcastDropsDeadConnections(t *testing.T) {
	hub := live.NewHub()
	client := dialHub(t, hub)
	client.Close()

	// Broadcasting must survive a client that went away.
	hub.Broadcast(live.Message{Type: "registration"})
	hub.Broadcast(live.Message{Type: "registration"})
}
