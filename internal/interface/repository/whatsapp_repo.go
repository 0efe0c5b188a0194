package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/domain/repository"
	"vandra-service/pkg/logger"
)

// WhatsappConfig holds the WhatsApp delivery service settings
type WhatsappConfig struct {
	BaseURL     string
	BearerToken string
	CompanyID   string
	AgentID     string
}

// WhatsappRepository delivers deal texts through the WhatsApp service.
// It serves the "sms" notification channel.
type WhatsappRepository struct {
	logger logger.Logger
	cfg    WhatsappConfig
	client *http.Client
}

// NewWhatsappRepository creates a new WhatsApp sender
func NewWhatsappRepository(cfg WhatsappConfig, logger logger.Logger) repository.NotificationSender {
	return &WhatsappRepository{
		logger: logger,
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Channel implements repository.NotificationSender
func (r *WhatsappRepository) Channel() string {
	return entity.ChannelSMS
}

// Send posts a text message to the WhatsApp service
func (r *WhatsappRepository) Send(ctx context.Context, deal entity.DealMessage) error {
	if deal.Recipient == "" {
		return errors.New("missing phone number")
	}

	msg := entity.SendWhatsappMessage{
		CompanyID:   r.cfg.CompanyID,
		AgentID:     r.cfg.AgentID,
		PhoneNumber: deal.Recipient,
		Message: entity.Message{
			Text: deal.Text,
		},
		Type: "text",
	}

	if err := msg.Message.Validate(); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}

	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/send-message", strings.TrimRight(r.cfg.BaseURL, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.cfg.BearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("WhatsApp service returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			TaskID string `json:"taskId"`
			Status string `json:"status"`
		} `json:"data"`
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !response.Success {
		return fmt.Errorf("WhatsApp service rejected message: %s (code: %s)", response.Error.Message, response.Error.Code)
	}

	r.logger.Info("Deal message queued",
		"taskId", response.Data.TaskID,
		"alertId", deal.AlertID,
		"destination", deal.Deal.Destination)

	return nil
}
