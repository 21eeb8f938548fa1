package chat

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"FinSight/internal/domain/service"
	"FinSight/pkg/logger"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
	maxQueryLen  = 4096
)

// Manager upgrades chat connections and bridges each question to the
// assistant. Connections are independent; one slow answer never blocks
// another socket.
type Manager struct {
	assistant service.Assistant
	logger    *logger.Logger
	upgrader  websocket.Upgrader
}

func NewManager(assistant service.Assistant, lgr *logger.Logger) *Manager {
	return &Manager{
		assistant: assistant,
		logger:    lgr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// session serializes writes; gorilla allows a single concurrent writer and
// the ping loop runs beside the answer path.
type session struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

type inbound struct {
	Query string `json:"query"`
}

type outbound struct {
	Answer  string   `json:"answer,omitempty"`
	Sources []string `json:"sources,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Serve upgrades the request and runs the session until the peer closes.
func (m *Manager) Serve(w http.ResponseWriter, r *http.Request) error {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	conn.SetReadLimit(maxQueryLen)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sess := &session{conn: conn}
	go m.pingLoop(ctx, sess)

	for {
		var in inbound
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				m.logger.Warn("chat read failed", logger.Error(err))
			}
			return nil
		}
		if in.Query == "" {
			m.write(sess, outbound{Error: "query is required"})
			continue
		}

		answer, err := m.assistant.Query(ctx, in.Query)
		if err != nil {
			m.logger.Error("assistant query failed", logger.Error(err))
			m.write(sess, outbound{Error: "assistant unavailable"})
			continue
		}
		m.write(sess, outbound{Answer: answer.Answer, Sources: answer.Sources})
	}
}

func (m *Manager) write(s *session, msg outbound) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(msg); err != nil {
		m.logger.Warn("chat write failed", logger.Error(err))
	}
}

func (m *Manager) pingLoop(ctx context.Context, s *session) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := s.conn.WriteMessage(websocket.PingMessage, nil)
			s.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
