package usecase

import (
	"context"
	"errors"
	"fmt"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/domain/repository"
	"vandra-service/pkg/logger"
)

// Onboarding turns a finished onboarding conversation into a flight alert
type Onboarding struct {
	extractor         PreferenceExtractor
	airportRepo       repository.AirportRepository
	alertRepo         repository.AlertRepository
	defaultOriginCode string
	logger            logger.Logger
}

// NewOnboarding creates a new onboarding flow. defaultOriginCode is used when
// the home airport cannot be resolved.
func NewOnboarding(
	extractor PreferenceExtractor,
	airportRepo repository.AirportRepository,
	alertRepo repository.AlertRepository,
	defaultOriginCode string,
	logger logger.Logger,
) *Onboarding {
	return &Onboarding{
		extractor:         extractor,
		airportRepo:       airportRepo,
		alertRepo:         alertRepo,
		defaultOriginCode: defaultOriginCode,
		logger:            logger,
	}
}

// CreateAlertFromConversation extracts preferences and stores them as a new
// active alert for the user. The returned alert carries its origin airport.
func (o *Onboarding) CreateAlertFromConversation(ctx context.Context, userID string, transcript []entity.ChatMessage) (*entity.FlightAlert, error) {
	prefs, err := o.extractor.ExtractPreferences(ctx, transcript)
	if err != nil {
		return nil, err
	}

	originCode := NormalizeAirportCode(prefs.HomeAirport, o.defaultOriginCode)
	origin, err := o.airportRepo.GetByCode(ctx, originCode)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		return nil, fmt.Errorf("lookup origin %s: %w", originCode, err)
	}
	if err != nil {
		o.logger.Warn("Origin airport unknown, using default",
			"requested", originCode,
			"default", o.defaultOriginCode,
			"error", err)
		originCode = o.defaultOriginCode
		origin, err = o.airportRepo.GetByCode(ctx, originCode)
		if err != nil {
			return nil, fmt.Errorf("default origin %s: %w", originCode, err)
		}
	}

	alert := &entity.FlightAlert{
		UserID:          userID,
		OriginCode:      originCode,
		MaxPrice:        ParseMaxPrice(prefs.PriceText, prefs.MaxPrice),
		DestinationText: prefs.Destinations,
		TimingText:      prefs.Timing,
		PriceText:       prefs.PriceText,
		Summary:         prefs.Summary,
		Status:          entity.AlertStatusActive,
	}
	if err := o.alertRepo.Create(ctx, alert); err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}
	alert.Origin = origin

	o.logger.Info("Created flight alert",
		"alertId", alert.ID,
		"origin", originCode,
		"destination", prefs.Destinations,
		"timing", prefs.Timing,
		"price", prefs.PriceText)
	return alert, nil
}
