package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/xvierd/countdown-cli/internal/domain"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB

	// Snapshots queued per connection before older ones are dropped.
	eventBuffer = 16
)

type wsEnvelope struct {
	Type  string           `json:"type"`
	Data  *domain.Snapshot `json:"data,omitempty"`
	Error string           `json:"error,omitempty"`
}

// The server binds to loopback by default.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsEvents streams the current snapshot, then one snapshot per transition.
func (h *Handler) wsEvents(c *gin.Context) {
	ctx := c.Request.Context()

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

	// Subscribe before reading the initial state so no transition is missed.
	events := make(chan domain.Snapshot, eventBuffer)
	unsubscribe := h.state.Subscribe(func(snap domain.Snapshot) {
		select {
		case events <- snap:
		default:
			h.log.Debugw("ws_event_dropped", "version", snap.Version)
		}
	})
	defer unsubscribe()

	done := make(chan struct{})
	go h.startReader(conn, done)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	initial, err := h.state.GetTimerState(ctx)
	if err != nil {
		h.log.Errorw("ws_get_state_failed", "err", err)
		return
	}
	if err := writeSnapshot(conn, initial); err != nil {
		h.log.Infow("ws_write_failed_initial", "err", err)
		return
	}
	lastVersion := initial.Version

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.Infow("ws_ping_failed", "err", err)
				return
			}
		case snap := <-events:
			if snap.Version <= lastVersion {
				continue
			}
			lastVersion = snap.Version
			if err := writeSnapshot(conn, snap); err != nil {
				h.log.Infow("ws_write_failed", "err", err)
				return
			}
		}
	}
}

// startReader drains incoming messages to handle control frames and detect
// closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}

func writeSnapshot(conn *websocket.Conn, snap domain.Snapshot) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(wsEnvelope{Type: "state", Data: &snap})
}
