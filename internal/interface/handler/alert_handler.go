package handler

import (
	"net/http"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/domain/repository"
	"vandra-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AlertHandler lists the caller's alerts
type AlertHandler struct {
	alertRepo repository.AlertRepository
	logger    logger.Logger
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(alertRepo repository.AlertRepository, logger logger.Logger) *AlertHandler {
	return &AlertHandler{
		alertRepo: alertRepo,
		logger:    logger,
	}
}

// List handles GET /api/alerts
func (h *AlertHandler) List(c *gin.Context) {
	alerts, err := h.alertRepo.ListByUser(c.Request.Context(), userIDFrom(c))
	if err != nil {
		h.logger.Error("Failed to list alerts", "userId", userIDFrom(c), "error", err)
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Something went wrong")
		return
	}
	if alerts == nil {
		alerts = []*entity.FlightAlert{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  alerts,
		"count": len(alerts),
	})
}
