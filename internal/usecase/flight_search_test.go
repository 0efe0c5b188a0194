package usecase

import (
	"context"
	"testing"

	"vandra-service/internal/domain/entity"
	"vandra-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFlightsWithoutDestination(t *testing.T) {
	provider := &fakeProvider{}
	search := NewFlightSearch(provider, logger.NewNopLogger())

	flights, err := search.SearchFlights(context.Background(), entity.SearchParams{Origin: "SLC", DepartureDate: "2025-03-01"})
	require.NoError(t, err)
	assert.Empty(t, flights)
	assert.Empty(t, provider.calls)
}

func TestSearchFlightsDefaultsAdults(t *testing.T) {
	provider := &fakeProvider{}
	search := NewFlightSearch(provider, logger.NewNopLogger())

	_, err := search.SearchFlights(context.Background(), entity.SearchParams{Origin: "SLC", Destination: "NRT", DepartureDate: "2025-03-01"})
	require.NoError(t, err)
	require.Len(t, provider.calls, 1)
	assert.Equal(t, 1, provider.calls[0].Adults)
}

func TestSearchMultipleDestinations(t *testing.T) {
	provider := &fakeProvider{search: func(p entity.SearchParams) ([]entity.Flight, error) {
		switch p.Destination {
		case "NRT":
			return []entity.Flight{flightOn("SLC", "NRT", p.DepartureDate, 900), flightOn("SLC", "NRT", p.DepartureDate, 500)}, nil
		case "HND":
			return nil, errBoom
		case "KIX":
			f := flightOn("SLC", "KIX", p.DepartureDate, 500)
			f.ID = "kix"
			return []entity.Flight{f}, nil
		}
		return nil, nil
	}}
	search := NewFlightSearch(provider, logger.NewNopLogger())
	maxPrice := 1000.0

	flights := search.SearchMultipleDestinations(context.Background(), "SLC", []string{"NRT", "HND", "KIX"}, "2025-03-01", &maxPrice)

	require.Len(t, flights, 3)
	assert.Equal(t, []float64{500, 500, 900}, []float64{flights[0].Price, flights[1].Price, flights[2].Price})
	// equal prices keep search order
	assert.Equal(t, "NRT", flights[0].Destination)
	assert.Equal(t, "kix", flights[1].ID)

	require.Len(t, provider.calls, 3)
	for _, call := range provider.calls {
		assert.Equal(t, "SLC", call.Origin)
		assert.Equal(t, "2025-03-01", call.DepartureDate)
		assert.Equal(t, &maxPrice, call.MaxPrice)
	}
}

func TestSearchMultipleDestinationsStopsOnCancel(t *testing.T) {
	provider := &fakeProvider{}
	search := NewFlightSearch(provider, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	flights := search.SearchMultipleDestinations(ctx, "SLC", []string{"NRT", "HND"}, "2025-03-01", nil)
	assert.Empty(t, flights)
	assert.Empty(t, provider.calls)
}

func TestPopularDestinations(t *testing.T) {
	search := NewFlightSearch(&fakeProvider{}, logger.NewNopLogger())
	assert.Equal(t, "CUN", search.PopularDestinations("SLC")[0])
	assert.Len(t, search.PopularDestinations("XYZ"), 10)
}
