package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Nabz863/group17-freelance-sd-sub000/model"
	"github.com/gorilla/websocket"
)

const hubWriteTimeout = 5 * time.Second

// Hub is the in-process realtime broadcast registry. Delivery is
// fire-and-forget: disconnected users miss events, there is no durability
// or replay.
type Hub struct {
	mu    sync.Mutex
	conns map[string][]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string][]*websocket.Conn)}
}

// Register adds a connection for the user.
func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[userID] = append(h.conns[userID], conn)
}

// Unregister removes a connection for the user and closes it.
func (h *Hub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(userID, conn)
}

func (h *Hub) removeLocked(userID string, conn *websocket.Conn) {
	conns := h.conns[userID]
	for i, c := range conns {
		if c == conn {
			h.conns[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
	conn.Close()
}

// Notify pushes an event to every connection of the user. Write failures
// drop the connection; nothing is returned to the caller.
func (h *Hub) Notify(userID string, n model.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.conns[userID]
	for i := len(conns) - 1; i >= 0; i-- {
		conn := conns[i]
		conn.SetWriteDeadline(time.Now().Add(hubWriteTimeout))
		if err := conn.WriteJSON(n); err != nil {
			slog.Warn("dropping websocket connection", "user_id", userID, "error", err)
			h.removeLocked(userID, conn)
		}
	}
}

// ConnectionCount reports the number of live connections for a user.
func (h *Hub) ConnectionCount(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns[userID])
}
