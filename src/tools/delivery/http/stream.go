package http

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/MMN3003/tradedesk/src/logger"
	"github.com/MMN3003/tradedesk/src/tools/domain"
	"github.com/MMN3003/tradedesk/src/tools/usecase"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Stream pushes every update of the tracked snipe to websocket clients.
type Stream struct {
	tracker  *usecase.Tracker
	upgrader websocket.Upgrader
	logger   *logger.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
}

func NewStream(tracker *usecase.Tracker, l *logger.Logger) *Stream {
	s := &Stream{
		tracker:  tracker,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		logger:   l,
		clients:  make(map[*websocket.Conn]chan []byte),
	}
	tracker.Subscribe(s.broadcast)
	return s
}

// Clients returns the number of connected clients.
func (s *Stream) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Stream) broadcast(u domain.SnipeUpdate) {
	msg, err := json.Marshal(u)
	if err != nil {
		s.logger.Errorf("snipe stream: marshal update: %v", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn, out := range s.clients {
		select {
		case out <- msg:
		default:
			s.logger.Warnf("snipe stream: client %s is slow, update dropped", conn.RemoteAddr())
		}
	}
}

// Serve upgrades the request and streams until the client goes away.
// The latest update, if any, is sent first.
//
//	@Summary	Live updates of the tracked snipe (websocket)
//	@Tags		snipes
//	@Success	101
//	@Router		/api/tools/snipes/stream [get]
func (s *Stream) Serve(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Errorf("snipe stream: upgrade: %v", err)
		return
	}

	out := make(chan []byte, 16)
	if u, ok := s.tracker.Latest(); ok {
		if msg, err := json.Marshal(u); err == nil {
			out <- msg
		}
	}
	s.mu.Lock()
	s.clients[conn] = out
	s.mu.Unlock()

	done := make(chan struct{})
	go s.writeLoop(conn, out, done)
	s.readLoop(conn)

	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	close(done)
}

// readLoop discards client messages and returns once the connection fails.
func (s *Stream) readLoop(conn *websocket.Conn) {
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warnf("snipe stream: read: %v", err)
			}
			return
		}
	}
}

func (s *Stream) writeLoop(conn *websocket.Conn, out <-chan []byte, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()
	for {
		select {
		case msg := <-out:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				s.logger.Warnf("snipe stream: write: %v", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
