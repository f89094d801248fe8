package websockets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/biteflow/restaurant-service/internal/events"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)

	upgrader := NewUpgrader([]string{"http://localhost:5173"})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		ServeWs(hub, conn, "admin@biteflow.test")
	}))

	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return hub, server
}

func dial(t *testing.T, server *httptest.Server, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	return websocket.DefaultDialer.Dial(url, header)
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestHub_PublishReachesDashboard(t *testing.T) {
	hub, server := startHub(t)

	conn, _, err := dial(t, server, "http://localhost:5173")
	require.NoError(t, err)
	defer conn.Close()

	// A pong proves the client is registered before anything is published
	require.NoError(t, conn.WriteJSON(Message{Type: TypePing}))
	assert.Equal(t, TypePong, readMessage(t, conn).Type)

	event := events.New(events.TypeOrderNew, "order-1", "user-1", "Pending")
	require.NoError(t, hub.Publish(context.Background(), event))

	msg := readMessage(t, conn)
	assert.Equal(t, MessageType("order.new"), msg.Type)

	var decoded events.Event
	require.NoError(t, json.Unmarshal(msg.Data, &decoded))
	assert.Equal(t, "order-1", decoded.ID)
	assert.Equal(t, "Pending", decoded.Status)
}

func TestUpgrader_RejectsUnknownOrigin(t *testing.T) {
	_, server := startHub(t)

	_, resp, err := dial(t, server, "http://evil.example")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHub_PublishAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	// Fill the buffer so the only ready case is the stopped hub
	for i := 0; i < cap(hub.broadcast); i++ {
		hub.broadcast <- []byte("x")
	}
	err := hub.Publish(context.Background(), events.New(events.TypeMenuUpdate, "menu", "", ""))
	assert.ErrorIs(t, err, ErrHubStopped)
}
