package hub

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chatapp/chat-api/internal/api/middleware"
)

// Handler upgrades authenticated requests on the chat endpoint to WebSocket
// connections and hands them to the hub. Token validation happens before the
// upgrade, in the auth middleware: a connection with an invalid token is
// rejected with 401 and never reaches the live set.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewHandler(h *Hub, allowedOrigins []string, log zerolog.Logger) *Handler {
	return &Handler{
		hub: h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		log: log,
	}
}

// Serve handles GET /chathub.
func (h *Handler) Serve(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		// The auth middleware should have rejected the request already.
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the handshake error response.
		h.log.Debug().Err(err).Msg("websocket upgrade failed")
		return nil
	}

	client := newClient(h.hub, conn, *claims, h.log)
	select {
	case h.hub.register <- client:
	case <-h.hub.ctx.Done():
		_ = conn.Close()
	}
	return nil
}

// originChecker allows same-origin requests (no Origin header) and any
// origin in the configured allow list.
func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		set[origin] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
