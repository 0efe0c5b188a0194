package usecase

import (
	"cmp"
	"context"
	"slices"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/domain/repository"
	"vandra-service/pkg/logger"
	"vandra-service/pkg/reference"
)

// FlightSearch runs offer searches against the flight-offers provider
type FlightSearch struct {
	provider repository.FlightOfferProvider
	logger   logger.Logger
}

// NewFlightSearch creates a new flight search
func NewFlightSearch(provider repository.FlightOfferProvider, logger logger.Logger) *FlightSearch {
	return &FlightSearch{
		provider: provider,
		logger:   logger,
	}
}

// SearchFlights searches one route. The provider needs a destination, so an
// empty one yields no flights without a call.
func (s *FlightSearch) SearchFlights(ctx context.Context, params entity.SearchParams) ([]entity.Flight, error) {
	if params.Destination == "" {
		s.logger.Debug("No destination specified, skipping search", "origin", params.Origin)
		return nil, nil
	}
	if params.Adults <= 0 {
		params.Adults = 1
	}
	return s.provider.SearchOffers(ctx, params)
}

// SearchMultipleDestinations searches each destination in turn and returns
// every flight found, cheapest first. A failing destination is logged and
// skipped.
func (s *FlightSearch) SearchMultipleDestinations(ctx context.Context, origin string, destinations []string, departureDate string, maxPrice *float64) []entity.Flight {
	var all []entity.Flight

	for _, destination := range destinations {
		if ctx.Err() != nil {
			break
		}

		flights, err := s.SearchFlights(ctx, entity.SearchParams{
			Origin:        origin,
			Destination:   destination,
			DepartureDate: departureDate,
			MaxPrice:      maxPrice,
		})
		if err != nil {
			s.logger.Warn("Route search failed",
				"origin", origin,
				"destination", destination,
				"date", departureDate,
				"error", err)
			continue
		}
		all = append(all, flights...)
	}

	slices.SortStableFunc(all, func(a, b entity.Flight) int {
		return cmp.Compare(a.Price, b.Price)
	})
	return all
}

// PopularDestinations returns inspiration destinations for an origin
func (s *FlightSearch) PopularDestinations(origin string) []string {
	return reference.PopularDestinations(origin)
}
