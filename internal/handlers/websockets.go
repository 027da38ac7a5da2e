package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"mini_crm/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 30 * time.Second
	minInterval      = 100 * time.Millisecond
	maxInterval      = 5 * time.Minute
	maxIntervalMilli = 300_000
)

// wsEnvelope is the message written to websocket clients.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Live feed
// @Description  Websocket. Sends a "dashboard" snapshot on connect and every interval, plus "reminder.due" events. The token may be passed as ?token=.
// @Tags         dashboard
// @Param        token        query  string  false  "Bearer token"
// @Param        interval     query  string  false  "Snapshot period, e.g. 10s"
// @Param        interval_ms  query  int     false  "Snapshot period in milliseconds"
// @Success      101
// @Failure      401  {object}  map[string]string
// @Router       /api/ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)
	userID := currentUser(c).ID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	var events <-chan notify.Event
	if h.hub != nil {
		ch, cancel := h.hub.Subscribe(userID)
		defer cancel()
		events = ch
	}

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()
	if err := h.sendDashboard(ctx, conn, userID); err != nil {
		h.log.Infow("ws_write_failed_initial", "err", err)
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				// hub closed on shutdown
				return
			}
			if err := writeJSON(conn, wsEnvelope{Type: ev.Type, Data: ev.Data}); err != nil {
				h.log.Infow("ws_event_write_failed", "err", err)
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.Infow("ws_ping_failed", "err", err)
				return
			}
		case <-ticker.C:
			if err := h.sendDashboard(ctx, conn, userID); err != nil {
				h.log.Infow("ws_write_failed", "err", err)
				return
			}
		}
	}
}

// parseInterval reads ?interval=10s or ?interval_ms=10000 within bounds,
// falling back to the configured feed interval.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d >= minInterval && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v >= int(minInterval/time.Millisecond) && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return h.feedInterval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}

// sendDashboard writes the user's dashboard. A failed query is reported to
// the client and keeps the connection open.
func (h *Handler) sendDashboard(ctx context.Context, conn *websocket.Conn, userID string) error {
	d, err := h.services.Dashboard.Get(ctx, userID)
	if err != nil {
		h.log.Errorw("ws_get_dashboard_failed", "err", err, "user", userID)
		return writeJSON(conn, wsEnvelope{Type: notify.EventDashboard, Error: "Error fetching dashboard data"})
	}
	return writeJSON(conn, wsEnvelope{Type: notify.EventDashboard, Data: d})
}

func writeJSON(conn *websocket.Conn, v wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}
