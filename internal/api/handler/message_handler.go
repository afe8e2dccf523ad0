package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chatapp/chat-api/internal/core/ports"
)

type MessageHandler struct {
	chatService ports.ChatService
}

func NewMessageHandler(chatService ports.ChatService) *MessageHandler {
	return &MessageHandler{chatService: chatService}
}

// List handles GET /api/messages: the full message history, oldest first,
// each record joined with its sending user.
//
// @Summary      List all messages
// @Tags         messages
// @Produce      json
// @Success      200  {array}   domain.Message
// @Failure      500  {object}  map[string]string
// @Router       /api/messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	messages, err := h.chatService.History(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messages)
}
