package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mwhitley/upnpscan/internal/description"
	"github.com/mwhitley/upnpscan/internal/logging"
)

const writeTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The server only runs on trusted local networks; the dashboard may
	// be opened from any origin on the LAN.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// event is one message on the websocket stream
type event struct {
	Type         string              `json:"type"` // scan_started, device, scan_complete
	SearchTarget string              `json:"search_target,omitempty"`
	Device       *description.Device `json:"device,omitempty"`
	Count        int                 `json:"count,omitempty"`
}

// subscriber is one connected websocket client. Writes are serialized
// through its own mutex; gorilla connections do not allow concurrent
// writers.
type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *subscriber) send(e event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(e)
}

// handleWebSocket upgrades the connection and keeps it registered until
// the client goes away. Inbound messages are discarded; the stream is
// one-way.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("websocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	sub := &subscriber{conn: conn}

	s.mu.Lock()
	s.subscribers[sub] = struct{}{}
	s.mu.Unlock()

	logging.Info("websocket client connected",
		zap.String("remote_addr", r.RemoteAddr),
	)

	defer func() {
		s.mu.Lock()
		delete(s.subscribers, sub)
		s.mu.Unlock()
		_ = conn.Close()
		logging.Info("websocket client disconnected",
			zap.String("remote_addr", r.RemoteAddr),
		)
	}()

	// Read loop exists only to observe the close handshake.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// broadcast pushes one event to every subscriber, dropping clients whose
// writes fail.
func (s *Server) broadcast(e event) {
	s.mu.Lock()
	subs := make([]*subscriber, 0, len(s.subscribers))
	for sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		if err := sub.send(e); err != nil {
			logging.Warn("dropping websocket client after failed write", zap.Error(err))
			s.mu.Lock()
			delete(s.subscribers, sub)
			s.mu.Unlock()
			_ = sub.conn.Close()
		}
	}
}

// closeSubscribers closes every websocket connection during shutdown
func (s *Server) closeSubscribers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sub := range s.subscribers {
		_ = sub.conn.Close()
		delete(s.subscribers, sub)
	}
}
