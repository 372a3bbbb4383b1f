package api

import (
	"errors"
	"fmt"
	"net/http"

	"gymmate/fitness-server/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler relays messages to the AI assistant.
type ChatHandler struct {
	chatService service.ChatService
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type ChatMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// Send forwards one message to the assistant and returns its reply.
func (h *ChatHandler) Send(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	reply, err := h.chatService.Send(c.Request.Context(), userID, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrAssistantUnavailable) {
			abortWithError(c, http.StatusServiceUnavailable, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to send message")
		}
		return
	}
	c.JSON(http.StatusOK, reply)
}
