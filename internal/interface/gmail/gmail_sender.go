package gmail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/domain/repository"
	"vandra-service/pkg/logger"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailSender delivers deal emails through the Gmail API
type GmailSender struct {
	gmailService *gmail.Service
	from         string
	logger       logger.Logger
}

// NewGmailSender creates a new Gmail sender. Extra client options are passed
// to the Gmail service.
func NewGmailSender(ctx context.Context, tokenSource oauth2.TokenSource, from string, logger logger.Logger, opts ...option.ClientOption) (repository.NotificationSender, error) {
	opts = append([]option.ClientOption{option.WithTokenSource(tokenSource)}, opts...)
	service, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &GmailSender{
		gmailService: service,
		from:         from,
		logger:       logger,
	}, nil
}

// Channel implements repository.NotificationSender
func (s *GmailSender) Channel() string {
	return entity.ChannelEmail
}

// Send implements repository.NotificationSender
func (s *GmailSender) Send(ctx context.Context, msg entity.DealMessage) error {
	if msg.Recipient == "" {
		return errors.New("missing email address")
	}

	raw := buildMessage(s.from, msg.Recipient, msg.Subject, msg.Text)
	sent, err := s.gmailService.Users.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("Deal email sent",
		"messageId", sent.Id,
		"alertId", msg.AlertID,
		"destination", msg.Deal.Destination)
	return nil
}

// buildMessage renders a plain-text RFC 2822 message.
func buildMessage(from, to, subject, body string) string {
	var b strings.Builder
	if from != "" {
		b.WriteString("From: " + from + "\r\n")
	}
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}
