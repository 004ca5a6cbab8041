// internal/realtime/hub.go
package realtime

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub tracks connected clients, keyed by user id when the connection
// identified itself and anonymous otherwise. Sends are fire-and-forget:
// a write failure drops that connection and never aborts delivery to
// the rest, nor the request that triggered the send.
type Hub struct {
	mu        sync.RWMutex
	userConns map[string]map[*client]struct{}
	anonConns map[*client]struct{}
}

type client struct {
	conn   *websocket.Conn
	sendMu sync.Mutex
	userID string
}

func NewHub() *Hub {
	return &Hub{
		userConns: make(map[string]map[*client]struct{}),
		anonConns: make(map[*client]struct{}),
	}
}

// Broadcast sends a message to every connected client.
func (h *Hub) Broadcast(message interface{}) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.anonConns))
	for _, conns := range h.userConns {
		for c := range conns {
			clients = append(clients, c)
		}
	}
	for c := range h.anonConns {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.send(message); err != nil {
			h.remove(c)
		}
	}
}

// SendToUser sends a message to every connection of a single user.
func (h *Hub) SendToUser(userID string, message interface{}) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.userConns[userID]))
	for c := range h.userConns[userID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.send(message); err != nil {
			h.remove(c)
		}
	}
}

func (c *client) send(message interface{}) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	return c.conn.WriteJSON(message)
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c.userID != "" {
		if h.userConns[c.userID] == nil {
			h.userConns[c.userID] = make(map[*client]struct{})
		}
		h.userConns[c.userID][c] = struct{}{}
	} else {
		h.anonConns[c] = struct{}{}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c.userID != "" {
		delete(h.userConns[c.userID], c)
		if len(h.userConns[c.userID]) == 0 {
			delete(h.userConns, c.userID)
		}
	} else {
		delete(h.anonConns, c)
	}
	c.conn.Close()
}

// ServeWS upgrades the request and pumps messages until the client
// goes away. The only inbound message handled is {"type":"ping"},
// answered with {"type":"pong"}.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("websocket upgrade failed")
		return
	}

	c := &client{conn: conn, userID: userID}
	h.add(c)
	defer h.remove(c)

	for {
		var message map[string]interface{}
		if err := conn.ReadJSON(&message); err != nil {
			return
		}
		if message["type"] == "ping" {
			if err := c.send(map[string]string{"type": "pong"}); err != nil {
				return
			}
		}
	}
}
