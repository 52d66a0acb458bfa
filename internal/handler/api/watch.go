package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	resdto "parking-booking-gateway/internal/handler/dto/response"
	"parking-booking-gateway/internal/handler/httperr"
	"parking-booking-gateway/internal/handler/middleware"
	"parking-booking-gateway/internal/pkg/config"
	"parking-booking-gateway/internal/usecase/reconciler"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 65536
)

// Watcher opens and drives reconcile watches; implemented by
// reconciler.Scheduler.
type Watcher interface {
	Watch(ns string, view reconciler.View) (*reconciler.Watch, error)
	Unwatch(id string)
	Refresh(id string) error
}

type WatchHandler struct {
	watches  Watcher
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewWatchHandler(watches Watcher, cfg config.Config, logger *slog.Logger) *WatchHandler {
	return &WatchHandler{
		watches: watches,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return middleware.OriginAllowed(cfg.CORS, r.Header.Get("Origin"))
			},
		},
		logger: logger,
	}
}

// @Summary Watch bookings
// @Description Upgrade to a WebSocket that pushes reconciled bookings, completions and session ends
// @Tags bookings
// @Param view query string false "dashboard or bookings" Enums(dashboard, bookings)
// @Success 101 "Switching Protocols"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /bookings/watch [get]
func (h *WatchHandler) Watch(c *gin.Context) {
	ns, ok := namespace(c)
	if !ok {
		return
	}
	view, err := reconciler.ParseView(c.Query("view"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown view", nil)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already answered the request.
		h.logger.Warn("websocket upgrade failed", "namespace", ns, "error", err)
		return
	}

	w, err := h.watches.Watch(ns, view)
	if err != nil {
		h.logger.Error("watch not opened", "namespace", ns, "error", err)
		h.closeWithError(conn, "Unable to watch bookings.")
		return
	}

	replies := make(chan resdto.WatchMessage, 4)
	writerDone := make(chan struct{})
	replies <- resdto.NewWatchMessage(resdto.MessageWatchOpened, resdto.WatchOpenedPayload{WatchID: w.ID, View: string(view)})

	go h.writePump(conn, w, replies, writerDone)
	h.readPump(conn, w, replies, writerDone)
	h.watches.Unwatch(w.ID)
}

// writePump is the only writer of conn.
func (h *WatchHandler) writePump(conn *websocket.Conn, w *reconciler.Watch, replies <-chan resdto.WatchMessage, done chan<- struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
		close(done)
	}()

	for {
		select {
		case e := <-w.Events():
			if err := h.write(conn, resdto.FromEvent(e)); err != nil {
				return
			}
			if e.Type == reconciler.EventSessionEnded {
				h.writeClose(conn, websocket.ClosePolicyViolation, "session ended")
				return
			}

		case m := <-replies:
			if err := h.write(conn, m); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-w.Done():
			h.writeClose(conn, websocket.CloseNormalClosure, "")
			return
		}
	}
}

func (h *WatchHandler) readPump(conn *websocket.Conn, w *reconciler.Watch, replies chan<- resdto.WatchMessage, writerDone <-chan struct{}) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("websocket read failed", "watch_id", w.ID, "error", err)
			}
			return
		}

		reply, ok := h.handleClientMessage(w, raw)
		if !ok {
			continue
		}
		select {
		case replies <- reply:
		case <-writerDone:
			return
		}
	}
}

// handleClientMessage returns the frame to answer with, if any.
func (h *WatchHandler) handleClientMessage(w *reconciler.Watch, raw []byte) (resdto.WatchMessage, bool) {
	var msg struct {
		Type resdto.MessageType `json:"type"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		return resdto.NewWatchMessage(resdto.MessageError, resdto.ErrorPayload{Message: "Malformed message."}), true
	}

	switch msg.Type {
	case resdto.MessageRefresh:
		if err := h.watches.Refresh(w.ID); err != nil {
			return resdto.NewWatchMessage(resdto.MessageError, resdto.ErrorPayload{Message: "Watch is closed."}), true
		}
		return resdto.WatchMessage{}, false
	case resdto.MessagePing:
		return resdto.NewWatchMessage(resdto.MessagePong, nil), true
	default:
		h.logger.Debug("unknown websocket message", "watch_id", w.ID, "type", string(msg.Type))
		return resdto.NewWatchMessage(resdto.MessageError, resdto.ErrorPayload{Message: "Unknown message type."}), true
	}
}

func (h *WatchHandler) write(conn *websocket.Conn, m resdto.WatchMessage) error {
	data, err := m.JSON()
	if err != nil {
		h.logger.Error("websocket message not encoded", "type", string(m.Type), "error", err)
		return nil
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (h *WatchHandler) writeClose(conn *websocket.Conn, code int, text string) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, text))
}

func (h *WatchHandler) closeWithError(conn *websocket.Conn, msg string) {
	_ = h.write(conn, resdto.NewWatchMessage(resdto.MessageError, resdto.ErrorPayload{Message: msg}))
	h.writeClose(conn, websocket.CloseInternalServerErr, msg)
	_ = conn.Close()
}

var _ Watcher = (*reconciler.Scheduler)(nil)
