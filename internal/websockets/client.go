package websockets

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second

	pongWait = 60 * time.Second

	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4 * 1024
)

// MessageType identifies a control message on the admin feed
type MessageType string

const (
	TypePing  MessageType = "ping"
	TypePong  MessageType = "pong"
	TypeError MessageType = "error"
)

// Message is a control frame exchanged with a dashboard
type Message struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Client is one admin dashboard connection
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	pong chan struct{}

	adminEmail string
}

// NewClient wraps an upgraded connection for the admin identified by adminEmail
func NewClient(hub *Hub, conn *websocket.Conn, adminEmail string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, 256),
		pong:       make(chan struct{}, 1),
		adminEmail: adminEmail,
	}
}

// readPump only answers pings, the feed is server push.
// send is owned by the hub, so pongs go through their own channel.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket read error for %s: %v", c.adminEmail, err)
			}
			break
		}

		var wsMessage Message
		if err := json.Unmarshal(message, &wsMessage); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		if wsMessage.Type == TypePing {
			select {
			case c.pong <- struct{}{}:
			default:
			}
		}
	}
}

func (c *Client) writePump() {
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

		case <-c.pong:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			pongMsg, _ := json.Marshal(Message{Type: TypePong})
			if err := c.conn.WriteMessage(websocket.TextMessage, pongMsg); err != nil {
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

// ServeWs registers an upgraded admin connection with the hub
func ServeWs(hub *Hub, conn *websocket.Conn, adminEmail string) {
	client := NewClient(hub, conn, adminEmail)

	select {
	case client.hub.register <- client:
	case <-hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
