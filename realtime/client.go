package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 512
)

// inbound is what clients send over the socket. Only join and leave are
// recognized
type inbound struct {
	Event string `json:"event"`
	Room  string `json:"room"`
}

// Client is one websocket connection bound to an authenticated user
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	UserID string
	Role   string
}

func NewClient(hub *Hub, conn *websocket.Conn, userID, role string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 32),
		UserID: userID,
		Role:   role,
	}
}

// UserRoom is the private room of the client's user
func (c *Client) UserRoom() string {
	return fmt.Sprintf("user:%s", c.UserID)
}

// RoleRoom is the shared room of the client's role
func (c *Client) RoleRoom() string {
	return fmt.Sprintf("role:%s", c.Role)
}

// allowed restricts membership to the client's own rooms
func (c *Client) allowed(room string) bool {
	return room == c.UserRoom() || room == c.RoleRoom()
}

// Run registers the client, joins its rooms and blocks on the read pump
// until the connection drops
func (c *Client) Run() {
	c.hub.register(c)
	c.hub.Join(c, c.UserRoom())
	c.hub.Join(c, c.RoleRoom())

	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug(
					"Unexpected close",
					zap.String("user", c.UserID),
					zap.Error(err),
				)
			}
			return
		}
		var message inbound
		if err := json.Unmarshal(payload, &message); err != nil {
			continue
		}
		switch message.Event {
		case "join":
			if c.allowed(message.Room) {
				c.hub.Join(c, message.Room)
			}
		case "leave":
			c.hub.Leave(c, message.Room)
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
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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
