package service

import (
	"sync"
	"time"

	"planpulse/pkg/logger"

	"github.com/gorilla/websocket"
)

// LiveEvent one message pushed to dashboard subscribers
type LiveEvent struct {
	Event     string      `json:"event"`
	ProjectID string      `json:"project_id"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

const writeTimeout = 10 * time.Second

// LiveHub fans progress events out to websocket subscribers. Subscribers may
// watch a single project or, with an empty project ID, every project.
type LiveHub struct {
	mu      sync.RWMutex
	clients map[*liveClient]struct{}
}

type liveClient struct {
	conn      *websocket.Conn
	projectID string // empty means all projects
	send      chan *LiveEvent
}

// NewLiveHub creates a new hub
func NewLiveHub() *LiveHub {
	return &LiveHub{
		clients: make(map[*liveClient]struct{}),
	}
}

// Subscribe registers a websocket connection and starts its writer loop.
// The connection is closed and deregistered when the client goes away or
// falls too far behind.
func (h *LiveHub) Subscribe(conn *websocket.Conn, projectID string) {
	client := &liveClient{
		conn:      conn,
		projectID: projectID,
		send:      make(chan *LiveEvent, 32),
	}

	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(client)
	go h.readLoop(client)
}

// Broadcast delivers an event to every matching subscriber. Slow clients
// are dropped instead of blocking the caller.
func (h *LiveHub) Broadcast(event *LiveEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if client.projectID != "" && client.projectID != event.ProjectID {
			continue
		}
		select {
		case client.send <- event:
		default:
			logger.Warn("dropping slow live subscriber")
			go h.remove(client)
		}
	}
}

// ClientCount reports the number of connected subscribers
func (h *LiveHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects all subscribers
func (h *LiveHub) Close() {
	h.mu.Lock()
	clients := make([]*liveClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*liveClient]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		close(c.send)
		_ = c.conn.Close()
	}
}

func (h *LiveHub) remove(client *liveClient) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
	}
	h.mu.Unlock()

	if ok {
		close(client.send)
		_ = client.conn.Close()
	}
}

func (h *LiveHub) writeLoop(client *liveClient) {
	for event := range client.send {
		_ = client.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := client.conn.WriteJSON(event); err != nil {
			h.remove(client)
			return
		}
	}
}

// readLoop drains the connection so close frames are processed
func (h *LiveHub) readLoop(client *liveClient) {
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			h.remove(client)
			return
		}
	}
}
