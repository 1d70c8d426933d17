// Package playground streams the live shift to websocket clients. Every committed state is
// pushed to every client, and new clients get the current state on connect.
package playground

import (
	"encoding/json"
	"log"
	"sync"

	"thepass/internal/kitchen"
	"thepass/internal/shift"
)

const (
	MessageState = "state"
	MessageQuip  = "quip"
	MessageError = "error"
)

// Message is what the server writes to a client
type Message struct {
	Type  string        `json:"type"`
	State *shift.State  `json:"state,omitempty"`
	Quip  *kitchen.Quip `json:"quip,omitempty"`
	Error string        `json:"error,omitempty"`
}

// Request is what a client may send. Supported actions are "snapshot" and "quip".
type Request struct {
	Action string `json:"action"`
}

// Hub fans machine states out to connected clients
type Hub struct {
	machine *shift.Machine

	mu      sync.Mutex
	clients map[*WSConnection]struct{}
	closed  bool
	cancel  func()
}

// NewHub creates a hub subscribed to machine
func NewHub(machine *shift.Machine) *Hub {
	h := &Hub{
		machine: machine,
		clients: make(map[*WSConnection]struct{}),
	}
	h.cancel = machine.Subscribe(h.broadcast)
	return h
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close drops the subscription and disconnects every client
func (h *Hub) Close() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) register(c *WSConnection) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *WSConnection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) broadcast(s shift.State) {
	data, err := json.Marshal(Message{Type: MessageState, State: &s})
	if err != nil {
		log.Printf("playground: failed to encode state: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.enqueue(data)
	}
}

// sendTo writes a message to a single client if it is still connected
func (h *Hub) sendTo(c *WSConnection, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("playground: failed to encode %s message: %v", msg.Type, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		c.enqueue(data)
	}
}

func (h *Hub) handleRequest(c *WSConnection, req Request) {
	switch req.Action {
	case "snapshot":
		s := h.machine.Snapshot()
		h.sendTo(c, Message{Type: MessageState, State: &s})
	case "quip":
		q := h.machine.StaffQuip()
		h.sendTo(c, Message{Type: MessageQuip, Quip: &q})
	default:
		h.sendTo(c, Message{Type: MessageError, Error: "unknown action: " + req.Action})
	}
}
