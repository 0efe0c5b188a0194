package entity

import "time"

// Alert statuses
const (
	AlertStatusActive  = "active"
	AlertStatusPaused  = "paused"
	AlertStatusExpired = "expired"
)

// FlightAlert is a user's standing request to watch for deals.
// Text fields keep the user's own wording; the structured fields narrow
// matching when set.
type FlightAlert struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	OriginCode      string     `json:"originCode"`
	DestinationCode string     `json:"destinationCode,omitempty"`
	DestinationText string     `json:"destinationText,omitempty"`
	MaxPrice        *float64   `json:"maxPrice,omitempty"`
	MinDiscount     *float64   `json:"minDiscount,omitempty"`
	DepartureAfter  *time.Time `json:"departureAfter,omitempty"`
	DepartureBefore *time.Time `json:"departureBefore,omitempty"`
	TimingText      string     `json:"timingText,omitempty"`
	PriceText       string     `json:"priceText,omitempty"`
	Summary         string     `json:"summary,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`

	Origin *Airport `json:"origin,omitempty"`
	User   *User    `json:"-"`
}

// IsActive reports whether the monitor should process the alert.
func (a *FlightAlert) IsActive() bool {
	return a != nil && a.Status == AlertStatusActive
}

// HasMaxPrice reports whether a positive price cap is set.
func (a *FlightAlert) HasMaxPrice() bool {
	return a.MaxPrice != nil && *a.MaxPrice > 0
}
