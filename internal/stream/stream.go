// Package stream broadcasts the recorded action stream to WebSocket
// spectators. It is a historian like any other: the engine stays unaware of
// the transport.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/holdem-arena/internal/game"
)

// envelope is the wire shape of one broadcast entry.
type envelope struct {
	HandID string          `json:"hand_id"`
	Kind   game.RecordKind `json:"kind"`
	Record json.RawMessage `json:"record"`
}

// Server fans hand records out to connected spectators. Connections whose
// writes fail are dropped; writes carry no deadline, so a slow spectator
// delays Record rather than being dropped. Spectator failures never propagate
// into the simulation, so Record always returns nil.
type Server struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewServer creates a spectator stream server.
func NewServer(logger *log.Logger) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Spectating is read-only and unauthenticated.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger,
		conns:  make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades a spectator connection and keeps it registered until it
// closes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("spectator upgrade failed", "error", err)
		return
	}

	s.mu.Lock()
	s.conns[conn] = struct{}{}
	count := len(s.conns)
	s.mu.Unlock()
	s.logger.Info("spectator connected", "remote", conn.RemoteAddr(), "spectators", count)

	// Drain (and ignore) client frames so pings and closes are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.drop(conn)
				return
			}
		}
	}()
}

// ListenAndServe serves the spectator endpoint at /stream until the listener
// fails.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/stream", s)
	s.logger.Info("spectator stream listening", "addr", addr)
	return http.ListenAndServe(addr, mux)
}

// Record implements game.Historian by broadcasting the record to every
// spectator.
func (s *Server) Record(handID game.HandID, _ *game.GameState, record game.Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		s.logger.Error("marshaling record for broadcast", "error", err)
		return nil
	}
	payload, err := json.Marshal(envelope{HandID: handID.String(), Kind: record.Kind(), Record: data})
	if err != nil {
		s.logger.Error("marshaling envelope for broadcast", "error", err)
		return nil
	}

	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.conns))
	for conn := range s.conns {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			s.logger.Warn("dropping spectator", "remote", conn.RemoteAddr(), "error", err)
			s.drop(conn)
		}
	}
	return nil
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	if _, ok := s.conns[conn]; ok {
		delete(s.conns, conn)
		conn.Close()
	}
	s.mu.Unlock()
}
