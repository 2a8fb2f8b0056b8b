package api

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"tycoon/internal/sim"
)

const (
	streamWriteWait  = 10 * time.Second
	streamSendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The daemon is a local single-player host; cross-origin pages on the
	// same machine (dashboards, dev tools) are fine.
	CheckOrigin: func(*http.Request) bool { return true },
}

// hub fans simulated-day reports out to websocket subscribers. Slow clients
// are dropped rather than allowed to stall the tick loop.
type hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	log     *slog.Logger
}

type client struct {
	conn *websocket.Conn
	send chan sim.DayReport
}

func newHub(logger *slog.Logger) *hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &hub{
		clients: make(map[*client]struct{}),
		log:     logger.With("component", "stream"),
	}
}

func (h *hub) broadcast(report sim.DayReport) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- report:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
}

func (h *hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("stream upgrade failed", "err", err)
		return
	}
	c := &client{conn: conn, send: make(chan sim.DayReport, streamSendBuffer)}
	s.host.hub.add(c)
	s.log.Info("stream client connected", "remote", conn.RemoteAddr().String())

	go c.writeLoop()
	// Reader only consumes control frames; any read error means the client
	// went away.
	go func() {
		defer s.host.hub.remove(c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (c *client) writeLoop() {
	defer c.conn.Close()
	for report := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		if err := c.conn.WriteJSON(report); err != nil {
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
