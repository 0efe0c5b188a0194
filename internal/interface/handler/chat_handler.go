package handler

import (
	"context"
	"net/http"

	"vandra-service/internal/domain/entity"
	"vandra-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ChatReplier produces the onboarding agent's next message
type ChatReplier interface {
	Reply(ctx context.Context, messages []entity.ChatMessage) (string, error)
}

// AlertCreator turns a finished conversation into an alert
type AlertCreator interface {
	CreateAlertFromConversation(ctx context.Context, userID string, transcript []entity.ChatMessage) (*entity.FlightAlert, error)
}

// ChatHandler serves the onboarding conversation
type ChatHandler struct {
	agent   ChatReplier
	creator AlertCreator
	logger  logger.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(agent ChatReplier, creator AlertCreator, logger logger.Logger) *ChatHandler {
	return &ChatHandler{
		agent:   agent,
		creator: creator,
		logger:  logger,
	}
}

type chatRequest struct {
	Messages []entity.ChatMessage `json:"messages" binding:"required,min=1,dive"`
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, http.StatusBadRequest, err)
		return
	}

	reply, err := h.agent.Reply(c.Request.Context(), req.Messages)
	if err != nil {
		h.logger.Error("Chat reply failed", "error", err)
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to get response")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": reply})
}

// Extract handles POST /api/chat/extract
func (h *ChatHandler) Extract(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, http.StatusBadRequest, err)
		return
	}

	alert, err := h.creator.CreateAlertFromConversation(c.Request.Context(), userIDFrom(c), req.Messages)
	if err != nil {
		h.logger.Error("Failed to save preferences", "userId", userIDFrom(c), "error", err)
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to save preferences")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"alert": gin.H{
			"id":              alert.ID,
			"origin":          alert.Origin,
			"destinationText": alert.DestinationText,
			"timingText":      alert.TimingText,
			"priceText":       alert.PriceText,
			"maxPrice":        alert.MaxPrice,
			"summary":         alert.Summary,
		},
	})
}
