package live

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/logging"
)

const (
	sendBuffer   = 16
	writeTimeout = 10 * time.Second
	maxReadSize  = 4096
)

// client is one websocket connection. Only the writer goroutine writes to
// conn; only the handler goroutine reads from it.
type client struct {
	id    string
	conn  *websocket.Conn
	codec Codec
	send  chan Message

	closeOnce sync.Once
	done      chan struct{}
}

// enqueue queues msg without blocking. A client that is too slow to keep up
// misses the message; the next frame supersedes it.
func (c *client) enqueue(msg Message) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// writeLoop sends queued messages until the client is closed.
func (c *client) writeLoop(ctx context.Context, logger *slog.Logger) {
	defer c.close()
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			data, err := c.codec.Marshal(msg)
			if err != nil {
				logger.DebugContext(ctx, "encode error", "error", err)
				continue
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(c.codec.MessageType(), data); err != nil {
				logger.DebugContext(ctx, "write error", "error", err)
				return
			}
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	codec := s.codec
	if name := r.URL.Query().Get("codec"); name != "" {
		c, err := CodecFor(name)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		codec = c
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(maxReadSize)

	c := &client{
		id:    uuid.NewString(),
		conn:  conn,
		codec: codec,
		send:  make(chan Message, sendBuffer),
		done:  make(chan struct{}),
	}
	ctx := logging.WithClientID(context.WithoutCancel(r.Context()), c.id)

	// Registering under the broadcast lock orders the initial frame before
	// every later broadcast.
	s.mu.Lock()
	c.send <- Message{Type: TypeHello, ClientID: c.id}
	c.send <- Message{Type: TypeFrame, Frame: NewFrame(s.host.Current())}
	s.clients[c.id] = c
	s.mu.Unlock()
	s.metrics.ClientConnected()
	s.logger.InfoContext(ctx, "client connected", "codec", codec.Name())

	defer func() {
		s.mu.Lock()
		delete(s.clients, c.id)
		s.mu.Unlock()
		s.metrics.ClientDisconnected()
		c.close()
		s.logger.InfoContext(ctx, "client disconnected")
	}()

	go c.writeLoop(ctx, s.logger)

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.WarnContext(ctx, "read error", "error", err)
			}
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}

		var cmd Command
		if err := codec.Unmarshal(data, &cmd); err != nil {
			c.enqueue(Message{Type: TypeError, Error: "invalid command: " + err.Error()})
			continue
		}
		s.apply(ctx, c, cmd)
	}
}
