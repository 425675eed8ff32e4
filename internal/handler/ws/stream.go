package ws

import (
	"net/http"
	"time"

	"SmartAllocator/internal/usecase"
	xlogger "SmartAllocator/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dashboard is served from a different origin in development.
	CheckOrigin: func(*http.Request) bool { return true },
}

// StreamHandler pushes run phase events to dashboard clients over a
// websocket. Each connection gets its own orchestrator subscription and
// an initial snapshot frame so late joiners see the current state.
type StreamHandler struct {
	logger *xlogger.Logger
	orch   *usecase.Orchestrator
}

func NewStreamHandler(logger *xlogger.Logger, orch *usecase.Orchestrator) *StreamHandler {
	return &StreamHandler{logger: logger, orch: orch}
}

func (h *StreamHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", h.Stream)
}

type frame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func (h *StreamHandler) Stream(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	events, unsubscribe := h.orch.Subscribe()
	defer unsubscribe()

	// Reader goroutine only services pongs and detects peer close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.writeFrame(conn, frame{Type: "snapshot", Data: h.orch.Snapshot()}); err != nil {
		return nil
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := h.writeFrame(conn, frame{Type: "phase", Data: ev}); err != nil {
				return nil
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		case <-done:
			return nil
		case <-c.Request().Context().Done():
			return nil
		}
	}
}

func (h *StreamHandler) writeFrame(conn *websocket.Conn, f frame) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(f); err != nil {
		h.logger.Debug("websocket write failed", xlogger.Error(err))
		return err
	}
	return nil
}
