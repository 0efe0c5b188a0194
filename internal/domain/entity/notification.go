package entity

import (
	"time"

	"vandra-service/pkg/utils"
)

// Notification channels
const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
	ChannelPush  = "push"
)

// Notification delivery statuses
const (
	NotificationSent   = "sent"
	NotificationFailed = "failed"
)

// FlightSnapshot freezes the deal as it was when the user was told about it.
type FlightSnapshot struct {
	ID              string  `json:"id"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	DepartureDate   string  `json:"departureDate"`
	Airline         string  `json:"airline"`
	AirlineName     string  `json:"airlineName"`
	Stops           int     `json:"stops"`
	Duration        int     `json:"duration"`
	BookingURL      string  `json:"bookingUrl"`
	DiscountPercent int     `json:"discountPercent"`
	AveragePrice    float64 `json:"averagePrice"`
}

// NewFlightSnapshot captures a deal for persistence.
func NewFlightSnapshot(deal DealResult) FlightSnapshot {
	f := deal.Flight
	return FlightSnapshot{
		ID:              f.ID,
		Price:           f.Price,
		Currency:        f.Currency,
		Origin:          f.Origin,
		Destination:     f.Destination,
		DepartureDate:   f.DepartureDate.UTC().Format(utils.ISO_TIME_LAYOUT),
		Airline:         f.Airline,
		AirlineName:     f.AirlineName,
		Stops:           f.Stops,
		Duration:        f.Duration,
		BookingURL:      f.BookingURL,
		DiscountPercent: deal.DiscountPercent,
		AveragePrice:    deal.AveragePrice,
	}
}

// FlightNotification records a deal surfaced to a user. Append-only.
type FlightNotification struct {
	ID        string         `json:"id"`
	AlertID   string         `json:"alertId"`
	Flight    FlightSnapshot `json:"flightData"`
	Channel   string         `json:"channel"`
	Status    string         `json:"status"`
	Error     string         `json:"error,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// DealMessage is a rendered notification ready for a channel sender.
type DealMessage struct {
	AlertID   string
	Recipient string
	Subject   string
	Text      string
	Deal      FlightSnapshot
}
