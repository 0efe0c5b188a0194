package repository

import (
	"context"

	"vandra-service/internal/domain/entity"
)

// FlightOfferProvider searches a third-party flight-offers API
type FlightOfferProvider interface {
	SearchOffers(ctx context.Context, params entity.SearchParams) ([]entity.Flight, error)
}

// NotificationSender delivers a rendered deal message over one channel
type NotificationSender interface {
	Channel() string
	Send(ctx context.Context, msg entity.DealMessage) error
}

// ChatCompleter produces one assistant reply for a system prompt and transcript
type ChatCompleter interface {
	Complete(ctx context.Context, system string, messages []entity.ChatMessage, maxTokens int) (string, error)
}
