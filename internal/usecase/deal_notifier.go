package usecase

import (
	"context"
	"errors"
	"fmt"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/domain/repository"
	"vandra-service/pkg/logger"
	"vandra-service/pkg/metrics"
	"vandra-service/templates"
)

// DealNotifier fans good deals out to every configured channel
type DealNotifier struct {
	senders          []repository.NotificationSender
	notificationRepo repository.NotificationRepository
	maxDeals         int
	metrics          *metrics.Metrics
	logger           logger.Logger
}

// NewDealNotifier creates a new deal notifier. maxDeals caps how many deals
// are sent per alert run.
func NewDealNotifier(
	senders []repository.NotificationSender,
	notificationRepo repository.NotificationRepository,
	maxDeals int,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *DealNotifier {
	if maxDeals <= 0 {
		maxDeals = 1
	}
	return &DealNotifier{
		senders:          senders,
		notificationRepo: notificationRepo,
		maxDeals:         maxDeals,
		metrics:          metrics,
		logger:           logger,
	}
}

// NotifyDeals sends the best deals and logs each attempt. Deals must already
// be ordered best first.
func (n *DealNotifier) NotifyDeals(ctx context.Context, alert *entity.FlightAlert, deals []entity.DealResult) error {
	if len(deals) > n.maxDeals {
		deals = deals[:n.maxDeals]
	}

	var errs []error
	for _, deal := range deals {
		content := templates.RenderDeal(alert, deal)
		snapshot := entity.NewFlightSnapshot(deal)

		for _, sender := range n.senders {
			channel := sender.Channel()
			recipient := recipientFor(channel, alert)
			if recipient == "" {
				continue
			}

			text := content.SMS
			if channel == entity.ChannelEmail {
				text = content.Email
			}

			notification := &entity.FlightNotification{
				AlertID: alert.ID,
				Flight:  snapshot,
				Channel: channel,
				Status:  entity.NotificationSent,
			}

			err := sender.Send(ctx, entity.DealMessage{
				AlertID:   alert.ID,
				Recipient: recipient,
				Subject:   content.Subject,
				Text:      text,
				Deal:      snapshot,
			})
			if err != nil {
				n.logger.Warn("Deal delivery failed", "alertId", alert.ID, "channel", channel, "error", err)
				notification.Status = entity.NotificationFailed
				notification.Error = err.Error()
				errs = append(errs, fmt.Errorf("%s: %w", channel, err))
			}
			n.metrics.Notification(channel, notification.Status)

			if err := n.notificationRepo.Create(ctx, notification); err != nil {
				n.logger.Error("Failed to log notification", "alertId", alert.ID, "channel", channel, "error", err)
				errs = append(errs, fmt.Errorf("log %s notification: %w", channel, err))
			}
		}
	}

	return errors.Join(errs...)
}

// recipientFor returns the address for a channel, or "" when the owner cannot
// be reached on it.
func recipientFor(channel string, alert *entity.FlightAlert) string {
	switch channel {
	case entity.ChannelSMS:
		if alert.User != nil && alert.User.PhoneVerified {
			return alert.User.Phone
		}
	case entity.ChannelEmail:
		if alert.User != nil {
			return alert.User.Email
		}
	case entity.ChannelPush:
		return alert.UserID
	}
	return ""
}
