package amadeus

import (
	"context"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/domain/repository"
	"vandra-service/pkg/reference"
	"vandra-service/pkg/utils"
)

const (
	flightOffersPath = "/v2/shopping/flight-offers"
	maxOffers        = 50
	bookingBaseURL   = "https://www.google.com/travel/flights"
)

var _ repository.FlightOfferProvider = (*Client)(nil)

type flightOffersResponse struct {
	Data         []flightOffer `json:"data"`
	Dictionaries struct {
		Carriers map[string]string `json:"carriers"`
	} `json:"dictionaries"`
}

type flightOffer struct {
	ID    string `json:"id"`
	Price struct {
		Currency   string `json:"currency"`
		Total      string `json:"total"`
		GrandTotal string `json:"grandTotal"`
	} `json:"price"`
	Itineraries            []itinerary `json:"itineraries"`
	ValidatingAirlineCodes []string    `json:"validatingAirlineCodes"`
}

type itinerary struct {
	Duration string    `json:"duration"`
	Segments []segment `json:"segments"`
}

type segment struct {
	Departure   segmentPoint `json:"departure"`
	Arrival     segmentPoint `json:"arrival"`
	CarrierCode string       `json:"carrierCode"`
}

type segmentPoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

// SearchOffers implements repository.FlightOfferProvider. Every request goes
// through the rate gate.
func (c *Client) SearchOffers(ctx context.Context, params entity.SearchParams) ([]entity.Flight, error) {
	adults := params.Adults
	if adults <= 0 {
		adults = 1
	}

	query := url.Values{}
	query.Set("originLocationCode", params.Origin)
	query.Set("destinationLocationCode", params.Destination)
	query.Set("departureDate", params.DepartureDate)
	query.Set("adults", strconv.Itoa(adults))
	query.Set("currencyCode", "USD")
	query.Set("max", strconv.Itoa(maxOffers))
	if params.ReturnDate != "" {
		query.Set("returnDate", params.ReturnDate)
	}
	if params.MaxPrice != nil && *params.MaxPrice > 0 {
		query.Set("maxPrice", strconv.FormatFloat(*params.MaxPrice, 'f', -1, 64))
	}

	var resp flightOffersResponse
	if err := c.RequestWithRateLimit(ctx, http.MethodGet, flightOffersPath, query, nil, &resp); err != nil {
		return nil, err
	}

	flights := make([]entity.Flight, 0, len(resp.Data))
	for _, offer := range resp.Data {
		flight, ok := normalizeOffer(offer, resp.Dictionaries.Carriers)
		if !ok {
			c.logger.Warn("Skipping malformed flight offer", "offerId", offer.ID)
			continue
		}
		flights = append(flights, flight)
	}
	return flights, nil
}

// normalizeOffer maps a provider offer onto a Flight. Offers without an
// outbound segment or a positive numeric price are rejected.
func normalizeOffer(offer flightOffer, carriers map[string]string) (entity.Flight, bool) {
	if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
		return entity.Flight{}, false
	}

	outbound := offer.Itineraries[0]
	first := outbound.Segments[0]
	last := outbound.Segments[len(outbound.Segments)-1]

	departure, err := utils.ParseProviderTime(first.Departure.At)
	if err != nil {
		return entity.Flight{}, false
	}

	priceText := offer.Price.GrandTotal
	if priceText == "" {
		priceText = offer.Price.Total
	}
	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return entity.Flight{}, false
	}

	airline := first.CarrierCode
	if len(offer.ValidatingAirlineCodes) > 0 && offer.ValidatingAirlineCodes[0] != "" {
		airline = offer.ValidatingAirlineCodes[0]
	}

	flight := entity.Flight{
		ID:            offer.ID,
		Price:         price,
		Currency:      offer.Price.Currency,
		Origin:        first.Departure.IATACode,
		Destination:   last.Arrival.IATACode,
		DepartureDate: departure,
		Airline:       airline,
		AirlineName:   reference.AirlineName(airline, carriers),
		Stops:         len(outbound.Segments) - 1,
		Duration:      utils.ParseISODuration(outbound.Duration),
	}

	returnAt := ""
	if len(offer.Itineraries) > 1 && len(offer.Itineraries[1].Segments) > 0 {
		returnAt = offer.Itineraries[1].Segments[0].Departure.At
		if t, err := utils.ParseProviderTime(returnAt); err == nil {
			flight.ReturnDate = &t
		}
	}

	flight.BookingURL = bookingURL(flight.Origin, flight.Destination, utils.DatePart(first.Departure.At), utils.DatePart(returnAt))
	return flight, true
}

// bookingURL builds a Google Flights deep link. The query keeps hl, gl, curr
// in that order.
func bookingURL(origin, destination, departDate, returnDate string) string {
	path := "/" + origin + "." + destination + "." + departDate
	if returnDate != "" {
		path += "*" + destination + "." + origin + "." + returnDate
	}
	return bookingBaseURL + path + "?hl=en&gl=us&curr=USD"
}
