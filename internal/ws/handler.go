package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/playpool/shotsolver/internal/planner"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 8192
	sendBuffer     = 32
)

// Message is the envelope for both directions. ID is chosen by the client
// and echoed on the reply so frames can be matched to detections.
type Message struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Client is one live aiming session.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	clientID string
	send     chan []byte

	// ctx scopes the session's solves; it ends when the session closes.
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// Hub tracks live sessions and answers their solve requests.
type Hub struct {
	planner  *planner.Planner
	upgrader websocket.Upgrader

	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	quit       chan struct{}
	mu         sync.RWMutex
}

// NewHub creates a hub. A nil checkOrigin applies the upgrader's same-origin
// check.
func NewHub(p *planner.Planner, checkOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		planner: p,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
	}
}

// Run serves register/unregister until ctx is done, then closes every
// session.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.quit)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				c.close()
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			h.mu.Unlock()
			log.Info().Str("client_id", c.clientID).Msg("[WS] session opened")

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				c.close()
			}
			h.mu.Unlock()
			log.Info().Str("client_id", c.clientID).Msg("[WS] session closed")
		}
	}
}

// Count returns the number of live sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Serve upgrades the request and runs the session until the peer leaves.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, clientID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("[WS] Upgrade error")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		hub:      h,
		conn:     conn,
		clientID: clientID,
		send:     make(chan []byte, sendBuffer),
		ctx:      ctx,
		cancel:   cancel,
	}
	select {
	case h.register <- c:
	case <-h.quit:
		cancel()
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

func (c *Client) close() {
	c.cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// trySend queues a message without blocking; a full buffer drops it.
func (c *Client) trySend(m Message) {
	data, err := json.Marshal(m)
	if err != nil {
		log.Error().Err(err).Msg("[WS] Error marshaling message")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Warn().Str("client_id", c.clientID).Msg("[WS] send buffer full, dropping message")
	}
}

func (c *Client) sendError(id, message string) {
	c.trySend(Message{Type: "error", ID: id, Message: message})
}

// writePump writes messages to the WebSocket connection
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
				// Best-effort close frame; the conn may already be gone.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Warn().Err(err).Str("client_id", c.clientID).Msg("[WS] write error")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Warn().Err(err).Str("client_id", c.clientID).Msg("[WS] ping error")
				return
			}
		}
	}
}

// readPump reads solve requests until the connection fails.
func (c *Client) readPump() {
	defer func() {
		c.cancel()
		select {
		case c.hub.unregister <- c:
		case <-c.hub.quit:
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
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("client_id", c.clientID).Msg("[WS] unexpected close")
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		c.handle(raw)
	}
}

func (c *Client) handle(raw []byte) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("", "invalid message")
		return
	}

	switch msg.Type {
	case "solve":
		var body planner.RequestBody
		if err := json.Unmarshal(msg.Data, &body); err != nil {
			c.sendError(msg.ID, "invalid solve request")
			return
		}
		req, err := body.Request()
		if err != nil {
			c.sendError(msg.ID, err.Error())
			return
		}
		res, err := c.hub.planner.Plan(c.ctx, c.clientID, req)
		if err != nil {
			if planner.IsInputError(err) {
				c.sendError(msg.ID, err.Error())
			} else {
				c.sendError(msg.ID, "internal error")
			}
			return
		}
		data, err := json.Marshal(res)
		if err != nil {
			c.sendError(msg.ID, "internal error")
			return
		}
		c.trySend(Message{Type: "shots", ID: msg.ID, Data: data})

	case "table":
		data, err := json.Marshal(c.hub.planner.Solver().Table())
		if err != nil {
			c.sendError(msg.ID, "internal error")
			return
		}
		c.trySend(Message{Type: "table", ID: msg.ID, Data: data})

	default:
		c.sendError(msg.ID, "unknown message type")
	}
}
