package api

import (
	"errors"
	"fmt"
	"net/http"

	"gymmate/fitness-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessagingHandler serves direct conversations between members and coaches.
type MessagingHandler struct {
	messagingService service.MessagingService
}

func NewMessagingHandler(messagingService service.MessagingService) *MessagingHandler {
	return &MessagingHandler{messagingService: messagingService}
}

type OpenConversationRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// List returns the user's conversations, most recently active first.
func (h *MessagingHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	conversations, err := h.messagingService.Conversations(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load conversations")
		return
	}
	c.JSON(http.StatusOK, conversations)
}

// Open finds or creates a direct conversation with another user.
func (h *MessagingHandler) Open(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req OpenConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	otherID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	conversation, err := h.messagingService.OpenConversation(c.Request.Context(), userID, otherID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to open conversation")
		}
		return
	}
	c.JSON(http.StatusOK, conversation)
}

// Messages returns a conversation's message log, oldest first.
func (h *MessagingHandler) Messages(c *gin.Context) {
	userID, conversationID, ok := h.userAndConversation(c)
	if !ok {
		return
	}

	messages, err := h.messagingService.Messages(c.Request.Context(), userID, conversationID)
	if err != nil {
		h.abortConversationError(c, err, "Failed to load messages")
		return
	}
	c.JSON(http.StatusOK, messages)
}

// Send appends a message to a conversation the user participates in.
func (h *MessagingHandler) Send(c *gin.Context) {
	userID, conversationID, ok := h.userAndConversation(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	message, err := h.messagingService.SendMessage(c.Request.Context(), userID, conversationID, req.Text)
	if err != nil {
		h.abortConversationError(c, err, "Failed to send message")
		return
	}
	c.JSON(http.StatusCreated, message)
}

func (h *MessagingHandler) userAndConversation(c *gin.Context) (userID, conversationID primitive.ObjectID, ok bool) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return userID, conversationID, false
	}

	conversationID, err = primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid conversation ID format")
		return userID, conversationID, false
	}
	return userID, conversationID, true
}

func (h *MessagingHandler) abortConversationError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrConversationNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotAParticipant):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
