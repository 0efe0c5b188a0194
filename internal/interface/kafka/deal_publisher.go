package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/domain/repository"
	"vandra-service/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher uses
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// DealEvent is the push payload consumed by the mobile notification worker
type DealEvent struct {
	AlertID string                `json:"alertId"`
	UserID  string                `json:"userId"`
	Title   string                `json:"title"`
	Body    string                `json:"body"`
	Flight  entity.FlightSnapshot `json:"flight"`
	SentAt  time.Time             `json:"sentAt"`
}

// DealPublisher emits deal events for the push channel
type DealPublisher struct {
	writer messageWriter
	logger logger.Logger
	now    func() time.Time
}

// NewDealPublisher creates a publisher writing to topic on brokers
func NewDealPublisher(brokers []string, topic string, logger logger.Logger) (*DealPublisher, error) {
	if len(brokers) == 0 || topic == "" {
		return nil, errors.New("kafka brokers and topic are required")
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		RequiredAcks:           kafka.RequireOne,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           5 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return newDealPublisher(w, logger), nil
}

func newDealPublisher(w messageWriter, logger logger.Logger) *DealPublisher {
	return &DealPublisher{
		writer: w,
		logger: logger,
		now:    time.Now,
	}
}

var _ repository.NotificationSender = (*DealPublisher)(nil)

// Channel implements repository.NotificationSender
func (p *DealPublisher) Channel() string {
	return entity.ChannelPush
}

// Send implements repository.NotificationSender. Recipient carries the user
// id and is used as the message key so a user's events stay ordered.
func (p *DealPublisher) Send(ctx context.Context, msg entity.DealMessage) error {
	body, err := json.Marshal(DealEvent{
		AlertID: msg.AlertID,
		UserID:  msg.Recipient,
		Title:   msg.Subject,
		Body:    msg.Text,
		Flight:  msg.Deal,
		SentAt:  p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal deal event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(msg.Recipient), Value: body}); err != nil {
		return fmt.Errorf("failed to publish deal event: %w", err)
	}

	p.logger.Debug("Deal event published", "alertId", msg.AlertID)
	return nil
}

// Close flushes and closes the underlying writer
func (p *DealPublisher) Close() error {
	return p.writer.Close()
}
