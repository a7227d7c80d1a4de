package obs

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Pose is an inbound player pose update from an observer client driving the
// hunter (position plus view yaw).
type Pose struct {
	Type string  `json:"type"` // "pose"
	X    float64 `json:"x"`
	Z    float64 `json:"z"`
	Yaw  float64 `json:"yaw"`
}

// Hub fans world snapshots out to connected websocket observers and funnels
// pose updates back to the game loop. Broadcast runs on the game loop
// goroutine; connection handlers run on their own goroutines, so the client
// set is mutex-guarded.
type Hub struct {
	upgrader websocket.Upgrader
	log      *zap.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}

	poses chan Pose
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 8192,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log:     log,
		clients: make(map[*websocket.Conn]struct{}),
		poses:   make(chan Pose, 64),
	}
}

// Poses returns the channel of inbound pose updates. The game loop drains it
// once per tick and applies the latest.
func (h *Hub) Poses() <-chan Pose {
	return h.poses
}

// HandleWS upgrades an HTTP request and services the connection until the
// peer goes away.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Info("observer connected", zap.String("remote", conn.RemoteAddr().String()), zap.Int("observers", n))

	go h.readLoop(conn)
}

func (h *Hub) readLoop(conn *websocket.Conn) {
	defer h.drop(conn)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var pose Pose
		if err := json.Unmarshal(msg, &pose); err != nil || pose.Type != "pose" {
			continue // ignore anything that isn't a pose update
		}
		select {
		case h.poses <- pose:
		default:
			// Game loop is behind; dropping stale poses is fine.
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

// Broadcast sends one snapshot to every connected observer. Write failures
// drop the client.
func (h *Hub) Broadcast(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		h.log.Error("snapshot marshal failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.drop(c)
		}
	}
}

// Observers returns the number of connected clients.
func (h *Hub) Observers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
