package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server upgrades HTTP connections for the live quote stream.
type Server struct {
	processor    MessageProcessor
	logger       *zap.Logger
	writeTimeout time.Duration
	upgrader     websocket.Upgrader

	// done is cancelled by Close; every live connection derives from it.
	done     context.Context
	shutdown context.CancelFunc
}

// NewServer builds ws server.
func NewServer(processor MessageProcessor, writeTimeout time.Duration, logger *zap.Logger) *Server {
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	done, shutdown := context.WithCancel(context.Background())
	return &Server{
		done:         done,
		shutdown:     shutdown,
		processor:    processor,
		logger:       logger,
		writeTimeout: writeTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleLive is the HTTP handler for /billing/invoices/live. It blocks until the client goes away.
func (s *Server) HandleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	stop := context.AfterFunc(s.done, cancel)
	defer stop()

	connection := NewConnection(conn, s.processor, s.writeTimeout, s.logger)
	s.logger.Debug("live quote client connected", zap.String("remote", r.RemoteAddr))
	connection.Serve(ctx)
	s.logger.Debug("live quote client disconnected", zap.String("remote", r.RemoteAddr))
}

// Close ends every live connection. http.Server.Shutdown does not track hijacked connections,
// so it is registered as a shutdown hook.
func (s *Server) Close() {
	s.shutdown()
}
