package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// liveMessage is the frame pushed to every live client.
type liveMessage struct {
	Type string    `json:"type"`
	View ViewState `json:"view"`
}

type liveClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans view updates out to websocket clients. All client bookkeeping
// happens on the Run goroutine.
type Hub struct {
	clients    map[*liveClient]struct{}
	register   chan *liveClient
	unregister chan *liveClient
	broadcast  chan []byte
	done       chan struct{}
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*liveClient]struct{}),
		register:   make(chan *liveClient),
		unregister: make(chan *liveClient),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		log:        log.With(zap.String("component", "live")),
	}
}

// Run serves the hub until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.log.Debug("Live client connected", zap.Int("clients", len(h.clients)))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.log.Debug("Live client disconnected", zap.Int("clients", len(h.clients)))
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// client terlalu lambat, putuskan
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Publish queues a view update. It never blocks the caller; when the queue
// is full the update is dropped, since a newer one will follow.
func (h *Hub) Publish(state ViewState) {
	msg, err := json.Marshal(liveMessage{Type: "view", View: state})
	if err != nil {
		h.log.Error("Failed to encode view update", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn("Live broadcast queue full, dropping update")
	}
}

type LiveHandler struct {
	hub  *Hub
	view *ViewPresenter
	log  *zap.Logger
}

func NewLiveHandler(hub *Hub, view *ViewPresenter, log *zap.Logger) *LiveHandler {
	return &LiveHandler{
		hub:  hub,
		view: view,
		log:  log.With(zap.String("handler", "live")),
	}
}

// Connect handles GET /api/live
func (h *LiveHandler) Connect(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}

	client := &liveClient{
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	// kirim state terakhir sebelum update berikutnya
	first, err := json.Marshal(liveMessage{Type: "view", View: h.view.Snapshot()})
	if err == nil {
		client.send <- first
	}

	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	case <-r.Context().Done():
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump(h.hub)
}

// readPump only watches for close and pong frames; clients never send state.
func (c *liveClient) readPump(hub *Hub) {
	defer func() {
		select {
		case hub.unregister <- c:
		case <-hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *liveClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
