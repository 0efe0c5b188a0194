package entity

import "time"

// Flight is a normalised offer returned by the flight-offers provider.
// Duration is in minutes.
type Flight struct {
	ID            string     `json:"id"`
	Price         float64    `json:"price"`
	Currency      string     `json:"currency"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DepartureDate time.Time  `json:"departureDate"`
	ReturnDate    *time.Time `json:"returnDate,omitempty"`
	Airline       string     `json:"airline"`
	AirlineName   string     `json:"airlineName"`
	Stops         int        `json:"stops"`
	Duration      int        `json:"duration"`
	BookingURL    string     `json:"bookingUrl"`
}

// SearchParams describes one offer search. Dates are YYYY-MM-DD.
type SearchParams struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	MaxPrice      *float64
	Adults        int
}

// PriceHistory is one observed price for a route and travel date.
type PriceHistory struct {
	ID          string    `json:"id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	TravelDate  time.Time `json:"travelDate"`
	Price       float64   `json:"price"`
	Airline     string    `json:"airline"`
	RecordedAt  time.Time `json:"recordedAt"`
}
