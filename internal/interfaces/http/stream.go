package httpinterface

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// streamEvents upgrades the connection to a websocket and writes the
// notifications for the ?event= topic, all of them if omitted, as text
// messages until the client goes away.
func (h *handler) streamEvents(w http.ResponseWriter, r *http.Request) {
	if h.pubsubSvc == nil {
		writeError(w, errWebhooksDisabled)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Listen before upgrading so that no notification committed after the
	// handshake is missed.
	messages, err := h.pubsubSvc.Listen(ctx, r.URL.Query().Get("event"))
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Debug("failed to upgrade event stream")
		return
	}
	defer conn.Close()

	// Clients never send data, reading is only needed to detect them leaving.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-messages:
			//nolint
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				//nolint
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(
				websocket.TextMessage, []byte(message),
			); err != nil {
				log.WithError(err).Debug("event stream closed")
				return
			}
		case <-ticker.C:
			//nolint
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
