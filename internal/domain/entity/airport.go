package entity

import (
	"time"
)

// Airport is reference data keyed by IATA code.
type Airport struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
