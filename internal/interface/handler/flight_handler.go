package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/interface/amadeus"
	"vandra-service/pkg/logger"
	"vandra-service/pkg/utils"

	"github.com/gin-gonic/gin"
)

// FlightSearcher runs a single-route offer search
type FlightSearcher interface {
	SearchFlights(ctx context.Context, params entity.SearchParams) ([]entity.Flight, error)
}

// FlightHandler serves ad-hoc flight searches
type FlightHandler struct {
	search FlightSearcher
	logger logger.Logger
}

// NewFlightHandler creates a new flight handler
func NewFlightHandler(search FlightSearcher, logger logger.Logger) *FlightHandler {
	return &FlightHandler{
		search: search,
		logger: logger,
	}
}

type searchRequest struct {
	Origin        string   `json:"origin" binding:"required,len=3"`
	Destination   string   `json:"destination" binding:"omitempty,len=3"`
	DepartureDate string   `json:"departureDate" binding:"required,datetime=2006-01-02"`
	ReturnDate    string   `json:"returnDate" binding:"omitempty,datetime=2006-01-02"`
	MaxPrice      *float64 `json:"maxPrice" binding:"omitempty,gt=0"`
}

type flightView struct {
	ID                string  `json:"id"`
	Price             float64 `json:"price"`
	PriceFormatted    string  `json:"priceFormatted"`
	Origin            string  `json:"origin"`
	Destination       string  `json:"destination"`
	DepartureDate     string  `json:"departureDate"`
	ReturnDate        string  `json:"returnDate,omitempty"`
	Airline           string  `json:"airline"`
	AirlineName       string  `json:"airlineName"`
	Stops             int     `json:"stops"`
	Duration          int     `json:"duration"`
	DurationFormatted string  `json:"durationFormatted"`
	BookingURL        string  `json:"bookingUrl"`
}

func newFlightView(f entity.Flight) flightView {
	view := flightView{
		ID:                f.ID,
		Price:             f.Price,
		PriceFormatted:    utils.FormatPrice(f.Price, f.Currency),
		Origin:            f.Origin,
		Destination:       f.Destination,
		DepartureDate:     f.DepartureDate.UTC().Format(utils.ISO_TIME_LAYOUT),
		Airline:           f.Airline,
		AirlineName:       f.AirlineName,
		Stops:             f.Stops,
		Duration:          f.Duration,
		DurationFormatted: utils.FormatDuration(f.Duration),
		BookingURL:        f.BookingURL,
	}
	if f.ReturnDate != nil {
		view.ReturnDate = f.ReturnDate.UTC().Format(utils.ISO_TIME_LAYOUT)
	}
	return view
}

// Search handles POST /api/flights/search
func (h *FlightHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, http.StatusBadRequest, err)
		return
	}
	if req.Destination == "" {
		respondError(c, http.StatusBadRequest, CodeValidationError, "Destination is required")
		return
	}

	params := entity.SearchParams{
		Origin:        strings.ToUpper(req.Origin),
		Destination:   strings.ToUpper(req.Destination),
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		MaxPrice:      req.MaxPrice,
	}
	h.logger.Info("Searching flights", "origin", params.Origin, "destination", params.Destination, "date", params.DepartureDate)

	flights, err := h.search.SearchFlights(c.Request.Context(), params)
	if err != nil {
		h.logger.Error("Flight search failed", "error", err)
		if amadeus.IsProviderError(err) || errors.Is(err, amadeus.ErrMissingCredentials) {
			respondError(c, http.StatusBadGateway, CodeAPIError, "Flight search failed. Please try again.")
			return
		}
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Something went wrong")
		return
	}

	views := make([]flightView, len(flights))
	for i, f := range flights {
		views[i] = newFlightView(f)
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  views,
		"count": len(views),
	})
}
