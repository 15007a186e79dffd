package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	readLimit    = 64 * 1024
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
)

// MessageProcessor turns one inbound frame into one reply frame.
type MessageProcessor interface {
	Process(ctx context.Context, raw []byte) []byte
}

// Connection is a single live quote client. Frames are handled one at a time in arrival order.
type Connection struct {
	ws           *websocket.Conn
	processor    MessageProcessor
	writeTimeout time.Duration
	logger       *zap.Logger

	writeMu sync.Mutex
}

// NewConnection wraps an upgraded websocket.
func NewConnection(ws *websocket.Conn, processor MessageProcessor, writeTimeout time.Duration, logger *zap.Logger) *Connection {
	return &Connection{
		ws:           ws,
		processor:    processor,
		writeTimeout: writeTimeout,
		logger:       logger,
	}
}

// Serve runs the read loop and the keepalive pinger until the peer disconnects or ctx ends.
// Cancelling ctx sends a going-away close frame and closes the socket, which unblocks the read.
func (c *Connection) Serve(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer c.ws.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		_ = c.ws.Close()
	})
	defer stop()

	go c.pingLoop(ctx)
	c.readLoop(ctx)
}

func (c *Connection) readLoop(ctx context.Context) {
	c.ws.SetReadLimit(readLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if ctx.Err() != nil {
			return
		}

		msgType, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Info("live quote connection closed", zap.Error(err))
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))

		reply := c.processor.Process(ctx, message)
		if reply == nil {
			continue
		}
		if err := c.write(websocket.TextMessage, reply); err != nil {
			c.logger.Warn("live quote write failed", zap.Error(err))
			return
		}
	}
}

func (c *Connection) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, []byte("ping")); err != nil {
				return
			}
		}
	}
}

func (c *Connection) write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	return c.ws.WriteMessage(messageType, data)
}
