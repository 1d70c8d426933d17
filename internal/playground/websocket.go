package playground

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4 * 1024
	sendBuffer     = 256
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSConnection maintains the WebSocket connection with the client
type WSConnection struct {
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

// HandleWebSocket upgrades the request and streams states to the client
func (h *Hub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("playground: failed to upgrade connection: %v", err)
		return
	}

	wsConn := &WSConnection{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		hub:  h,
	}
	if !h.register(wsConn) {
		conn.Close()
		return
	}

	s := h.machine.Snapshot()
	h.sendTo(wsConn, Message{Type: MessageState, State: &s})

	go wsConn.writePump()
	go wsConn.readPump()
}

// enqueue must be called with the hub lock held
func (c *WSConnection) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
		log.Println("playground: client buffer full, dropping message")
	}
}

// readPump handles client requests until the connection drops
func (c *WSConnection) readPump() {
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
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("playground: websocket error: %v", err)
			}
			break
		}

		var req Request
		if err := json.Unmarshal(message, &req); err != nil {
			c.hub.sendTo(c, Message{Type: MessageError, Error: "malformed request"})
			continue
		}
		c.hub.handleRequest(c, req)
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *WSConnection) writePump() {
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

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
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
