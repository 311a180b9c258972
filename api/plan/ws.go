package plan

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kilianp07/berthplan/core/model"
	"github.com/kilianp07/berthplan/core/planstore"
	"github.com/kilianp07/berthplan/core/report"
)

const (
	wsPingInterval = 20 * time.Second
	wsReadTimeout  = 60 * time.Second
	wsWriteTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{CheckOrigin: func(_ *http.Request) bool { return true }}

// wsMessage is pushed to clients on connect and after every replan.
type wsMessage struct {
	Type      string           `json:"type"`
	Summary   report.Summary   `json:"summary"`
	Schedules []model.Schedule `json:"schedules"`
}

func planMessage(snap planstore.Snapshot) wsMessage {
	return wsMessage{
		Type:      "plan",
		Summary:   report.Summarize(snap.Plan, snap.Berths),
		Schedules: snap.Plan.Schedules,
	}
}

// ws streams snapshots until the client goes away. Incoming frames are
// only read to service pongs and detect closure.
func (h *Handler) ws(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer func() { _ = conn.Close() }()

	ch := h.store.Subscribe()
	defer h.store.Unsubscribe(ch)

	closed := make(chan struct{})
	conn.SetReadLimit(1 << 16)
	_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(v any) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		return conn.WriteJSON(v)
	}
	if snap, ok := h.store.Latest(); ok {
		if err := write(planMessage(snap)); err != nil {
			return
		}
	}

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case snap, ok := <-ch:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
				return
			}
			if err := write(planMessage(snap)); err != nil {
				h.log.Warnf("websocket write: %v", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
