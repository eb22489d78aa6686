package livefeed

import (
	"log"
	"net/http"
	"time"

	"tripdesk/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// Client is one connected dashboard.
type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	UserID string
}

// ServeWS upgrades an authenticated dashboard connection and streams
// inquiry notifications to it. Inbound frames are discarded; the feed
// is one-way.
func ServeWS(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		token := r.Header.Get("Authorization")
		if token == "" {
			// Browsers cannot set headers on WebSocket dials.
			token = "Bearer " + r.URL.Query().Get("token")
		}
		claims, err := middleware.ValidateJWT(token)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}

		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 256),
			UserID: claims.UserID,
		}
		if !hub.addClient(client) {
			conn.Close()
			return
		}

		go client.writePump(hub)
		go client.readPump(hub)
	}
}

func (c *Client) writePump(hub *Hub) {
	defer c.Conn.Close()
	for data := range c.Send {
		c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

func (c *Client) readPump(hub *Hub) {
	defer func() {
		hub.removeClient(c)
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
