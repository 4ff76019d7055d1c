package handler

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"videoflow/internal/dto"
	"videoflow/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The UI is served from the same host; no cross-origin callers.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ProgressHub fans batch-mix progress events out to websocket clients.
type ProgressHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewProgressHub() *ProgressHub {
	return &ProgressHub{
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Broadcast sends one progress event to every connected client. Dead
// connections are dropped on write failure.
func (hub *ProgressHub) Broadcast(event dto.MixProgress) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	for conn := range hub.clients {
		if err := conn.WriteJSON(event); err != nil {
			log.GetLogger().Warn("progress client write failed", zap.Error(err))
			conn.Close()
			delete(hub.clients, conn)
		}
	}
}

func (hub *ProgressHub) add(conn *websocket.Conn) {
	hub.mu.Lock()
	hub.clients[conn] = struct{}{}
	hub.mu.Unlock()
}

func (hub *ProgressHub) remove(conn *websocket.Conn) {
	hub.mu.Lock()
	if _, ok := hub.clients[conn]; ok {
		conn.Close()
		delete(hub.clients, conn)
	}
	hub.mu.Unlock()
}

// ClientCount reports connected listeners.
func (hub *ProgressHub) ClientCount() int {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return len(hub.clients)
}

// Progress upgrades the request to a websocket and keeps it registered
// until the peer goes away. Only server->client traffic is meaningful;
// the read loop exists to observe the close.
func (h *Handler) Progress(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.GetLogger().Error("progress websocket upgrade failed", zap.Error(err))
		return
	}

	h.Hub.add(conn)
	log.GetLogger().Info("progress client connected")

	go func() {
		defer h.Hub.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
