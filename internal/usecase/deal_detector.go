package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/domain/repository"
	"vandra-service/pkg/logger"
	"vandra-service/pkg/reference"
	"vandra-service/pkg/utils"
)

// Deal thresholds, in percent below the route average
const (
	greatDealThreshold = 30
	goodDealThreshold  = 20
	minDealThreshold   = 15

	// Estimated discount when only the alert's price cap is known.
	estimatedDiscount = 20
)

const (
	minObservations = 3
	travelWindow    = 7 * 24 * time.Hour
	historyWindow   = 30 * 24 * time.Hour
)

// DealDetector rates flights against recorded price history
type DealDetector struct {
	prices repository.PriceHistoryRepository
	logger logger.Logger
	now    func() time.Time
}

// NewDealDetector creates a new deal detector
func NewDealDetector(prices repository.PriceHistoryRepository, logger logger.Logger) *DealDetector {
	return &DealDetector{
		prices: prices,
		logger: logger,
		now:    time.Now,
	}
}

// AveragePrice returns the mean observed price for a route around a travel
// date. ok is false when fewer than three recent observations exist.
func (d *DealDetector) AveragePrice(ctx context.Context, origin, destination string, travelDate time.Time) (avg float64, ok bool, err error) {
	stats, err := d.prices.Stats(ctx, repository.PriceQuery{
		Origin:        origin,
		Destination:   destination,
		TravelFrom:    travelDate.Add(-travelWindow),
		TravelTo:      travelDate.Add(travelWindow),
		RecordedSince: d.now().Add(-historyWindow),
	})
	if err != nil {
		return 0, false, fmt.Errorf("price stats %s-%s: %w", origin, destination, err)
	}
	if stats.Count < minObservations || stats.Average <= 0 {
		return 0, false, nil
	}
	return stats.Average, true, nil
}

// MatchesAlertCriteria applies the alert's hard filters to a flight.
func MatchesAlertCriteria(flight entity.Flight, alert *entity.FlightAlert) bool {
	if alert.DestinationCode != "" && flight.Destination != alert.DestinationCode {
		return false
	}
	if alert.HasMaxPrice() && flight.Price > *alert.MaxPrice {
		return false
	}
	if alert.DepartureAfter != nil && flight.DepartureDate.Before(*alert.DepartureAfter) {
		return false
	}
	if alert.DepartureBefore != nil && flight.DepartureDate.After(*alert.DepartureBefore) {
		return false
	}
	return true
}

// DetectDeals rates every flight that passes the alert's filters and returns
// them best discount first.
func (d *DealDetector) DetectDeals(ctx context.Context, flights []entity.Flight, alert *entity.FlightAlert) ([]entity.DealResult, error) {
	deals := make([]entity.DealResult, 0, len(flights))

	for _, flight := range flights {
		if !MatchesAlertCriteria(flight, alert) {
			continue
		}
		if alert.DestinationText != "" && !reference.MatchesDestinationText(flight.Destination, alert.DestinationText) {
			d.logger.Debug("Destination outside requested region",
				"destination", flight.Destination,
				"destinationText", alert.DestinationText)
		}

		avg, known, err := d.AveragePrice(ctx, flight.Origin, flight.Destination, flight.DepartureDate)
		if err != nil {
			return nil, err
		}

		deals = append(deals, rateDeal(flight, avg, known, alert))
	}

	slices.SortStableFunc(deals, func(a, b entity.DealResult) int {
		return cmp.Compare(b.DiscountPercent, a.DiscountPercent)
	})
	return deals, nil
}

func rateDeal(flight entity.Flight, avg float64, known bool, alert *entity.FlightAlert) entity.DealResult {
	deal := entity.DealResult{
		Flight:       flight,
		AveragePrice: flight.Price,
		PriceRating:  entity.PriceRatingAverage,
	}

	if known {
		deal.AveragePrice = avg
		deal.DiscountPercent = int(utils.RoundHalfUp((avg - flight.Price) / avg * 100))

		switch {
		case deal.DiscountPercent >= greatDealThreshold:
			deal.PriceRating = entity.PriceRatingGreat
		case deal.DiscountPercent >= goodDealThreshold:
			deal.PriceRating = entity.PriceRatingGood
		case deal.DiscountPercent < 0:
			deal.PriceRating = entity.PriceRatingHigh
		}
	} else if alert.HasMaxPrice() && flight.Price <= *alert.MaxPrice*0.8 {
		deal.PriceRating = entity.PriceRatingGood
		deal.DiscountPercent = estimatedDiscount
	}

	deal.IsGoodDeal = deal.DiscountPercent >= minDealThreshold ||
		(alert.HasMaxPrice() && flight.Price <= *alert.MaxPrice*0.85)

	return deal
}

// FilterGoodDeals keeps deals flagged as good, preserving order.
func FilterGoodDeals(deals []entity.DealResult) []entity.DealResult {
	good := make([]entity.DealResult, 0, len(deals))
	for _, deal := range deals {
		if deal.IsGoodDeal {
			good = append(good, deal)
		}
	}
	return good
}

// RecordPrices stores one observation per flight. Identical observations are
// skipped by the store.
func (d *DealDetector) RecordPrices(ctx context.Context, flights []entity.Flight) error {
	if len(flights) == 0 {
		return nil
	}

	recordedAt := d.now().UTC()
	observations := make([]entity.PriceHistory, len(flights))
	for i, f := range flights {
		observations[i] = entity.PriceHistory{
			Origin:      f.Origin,
			Destination: f.Destination,
			TravelDate:  f.DepartureDate,
			Price:       f.Price,
			Airline:     f.Airline,
			RecordedAt:  recordedAt,
		}
	}

	written, err := d.prices.RecordMany(ctx, observations)
	if err != nil {
		return fmt.Errorf("record prices: %w", err)
	}
	d.logger.Debug("Recorded price observations", "flights", len(flights), "written", written)
	return nil
}

// DestinationsForAlert picks the airports to search for an alert.
func DestinationsForAlert(alert *entity.FlightAlert) []string {
	if alert.DestinationCode != "" {
		return []string{alert.DestinationCode}
	}
	return reference.SearchSetFor(alert.DestinationText)
}
