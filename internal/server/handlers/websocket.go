package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"

	"trendpulse/internal/logger"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// TrendsWebSocketHandler streams trend events to connected clients. Every
// event published under the topic (refreshes and completed analyses) is
// forwarded verbatim.
func TrendsWebSocketHandler(natsConn *nats.Conn, topic string, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("websocket upgrade failed", logger.Error(err))
			return
		}

		events := make(chan *nats.Msg, 64)
		sub, err := natsConn.ChanSubscribe(fmt.Sprintf("%s.>", topic), events)
		if err != nil {
			log.Error("failed to subscribe to trend events", logger.Error(err))
			conn.Close()
			return
		}

		log.Info("websocket client connected", logger.String("remote", r.RemoteAddr))

		go writePump(conn, events, log)
		readPump(conn, sub, log)
	}
}

// readPump drains client messages until the connection closes. Incoming
// payloads are ignored; the stream is one-way.
func readPump(conn *websocket.Conn, sub *nats.Subscription, log logger.Logger) {
	defer func() {
		sub.Unsubscribe()
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read error", logger.Error(err))
			}
			return
		}
	}
}

// writePump forwards trend events to the client and keeps the connection
// alive with pings.
func writePump(conn *websocket.Conn, events <-chan *nats.Msg, log logger.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-events:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg.Data); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
