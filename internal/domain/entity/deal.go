package entity

// PriceRating buckets a flight price against its route average.
type PriceRating string

const (
	PriceRatingGreat   PriceRating = "great"
	PriceRatingGood    PriceRating = "good"
	PriceRatingAverage PriceRating = "average"
	PriceRatingHigh    PriceRating = "high"
)

// DealResult rates one flight. AveragePrice equals the flight price when no
// baseline is known.
type DealResult struct {
	Flight          Flight      `json:"flight"`
	AveragePrice    float64     `json:"averagePrice"`
	DiscountPercent int         `json:"discountPercent"`
	IsGoodDeal      bool        `json:"isGoodDeal"`
	PriceRating     PriceRating `json:"priceRating"`
}

// MonitoringResult summarises one alert run. Error is set instead of
// returning an error so batch callers can keep going.
type MonitoringResult struct {
	AlertID        string       `json:"alertId" bson:"alertId"`
	SearchedRoutes int          `json:"searchedRoutes" bson:"searchedRoutes"`
	FlightsFound   int          `json:"flightsFound" bson:"flightsFound"`
	DealsFound     int          `json:"dealsFound" bson:"dealsFound"`
	GoodDeals      []DealResult `json:"goodDeals" bson:"-"`
	Error          string       `json:"error,omitempty" bson:"error,omitempty"`
}

// BatchSummary aggregates a run over all active alerts.
type BatchSummary struct {
	Processed  int `json:"processed"`
	TotalDeals int `json:"totalDeals"`
	Errors     int `json:"errors"`
}
