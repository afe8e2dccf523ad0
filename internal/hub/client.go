package hub

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/chatapp/chat-api/internal/api/metrics"
	"github.com/chatapp/chat-api/internal/core/ports"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 256
)

// Client is one live connection, bound to exactly one authenticated identity
// for its lifetime. It holds no message buffer beyond the transport send
// queue.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	identity ports.Claims
	send     chan []byte
	log      zerolog.Logger
}

func newClient(h *Hub, conn *websocket.Conn, identity ports.Claims, log zerolog.Logger) *Client {
	if conn != nil {
		conn.SetReadLimit(maxMessageSize)
	}
	return &Client{
		hub:      h,
		conn:     conn,
		identity: identity,
		send:     make(chan []byte, sendBuffer),
		log:      log.With().Int64("user_id", identity.UserID).Str("username", identity.Username).Logger(),
	}
}

// readPump reads inbound frames until the connection dies. Each accepted
// send is persisted before it is handed to the hub for fan-out; a message
// that fails to persist is never broadcast.
func (c *Client) readPump() {
	defer func() {
		// During shutdown the run loop is gone; don't block on it.
		select {
		case c.hub.unregister <- c:
		case <-c.hub.ctx.Done():
		}
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Debug().Err(err).Msg("websocket read failed")
			}
			return
		}
		c.handleFrame(raw)
	}
}

func (c *Client) handleFrame(raw []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		c.log.Debug().Err(err).Msg("discarding malformed frame")
		return
	}

	// Empty input is not acknowledged: no record, no broadcast, no error
	// back to the sender.
	if strings.TrimSpace(frame.Content) == "" {
		metrics.MessagesDroppedTotal.WithLabelValues("empty_content").Inc()
		return
	}

	msg, err := c.hub.chat.Post(c.hub.ctx, c.identity.UserID, frame.Content)
	if err != nil {
		metrics.MessagesDroppedTotal.WithLabelValues("persist_failed").Inc()
		c.log.Error().Err(err).Msg("message persistence failed; broadcast suppressed")
		return
	}

	payload, err := marshalReceiveMessage(c.identity.Username, c.identity.Email, msg)
	if err != nil {
		c.log.Error().Err(err).Msg("marshal broadcast event")
		return
	}

	select {
	case c.hub.broadcast <- payload:
		metrics.MessagesBroadcastTotal.Inc()
	case <-c.hub.ctx.Done():
	}
}

// writePump drains the send channel onto the wire and keeps the connection
// alive with periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel: say goodbye and stop.
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.log.Debug().Err(err).Msg("websocket write failed")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
