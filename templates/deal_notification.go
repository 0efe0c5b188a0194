package templates

import (
	"fmt"
	"strings"

	"vandra-service/internal/domain/entity"
	"vandra-service/pkg/utils"
)

const (
	DEAL_SUBJECT_TEMPLATE = "✈️ %s → %s for %s"

	// Short enough for a single WhatsApp bubble.
	DEAL_SMS_TEMPLATE = `✈️ *Flight deal from Vandra*

%s → %s on %s
*%s* with %s (%s)
%s

Book: %s`

	DEAL_EMAIL_TEMPLATE = `Hi %s,

We found a flight that matches your alert "%s".

Route:      %s → %s
Departure:  %s
Airline:    %s
Stops:      %s
Duration:   %s
Price:      %s
%s

Book it here: %s

Prices change quickly, so grab it while it lasts.

The Vandra team`
)

// DealContent is a rendered notification for one deal
type DealContent struct {
	Subject string
	SMS     string
	Email   string
}

// RenderDeal renders the notification texts for a deal on an alert.
func RenderDeal(alert *entity.FlightAlert, deal entity.DealResult) DealContent {
	f := deal.Flight
	price := utils.FormatPrice(f.Price, f.Currency)
	departure := f.DepartureDate.UTC().Format("Mon, Jan 2")

	name := "there"
	if alert.User != nil && alert.User.Name != "" {
		name = strings.Fields(alert.User.Name)[0]
	}

	alertName := alert.Summary
	if alertName == "" {
		alertName = entity.DefaultSummary
	}

	return DealContent{
		Subject: fmt.Sprintf(DEAL_SUBJECT_TEMPLATE, f.Origin, f.Destination, price),
		SMS: fmt.Sprintf(DEAL_SMS_TEMPLATE,
			f.Origin, f.Destination, departure,
			price, f.AirlineName, stopsLabel(f.Stops),
			savingsLine(deal),
			f.BookingURL),
		Email: fmt.Sprintf(DEAL_EMAIL_TEMPLATE,
			name, alertName,
			f.Origin, f.Destination,
			departure,
			f.AirlineName,
			stopsLabel(f.Stops),
			utils.FormatDuration(f.Duration),
			price,
			savingsLine(deal),
			f.BookingURL),
	}
}

func stopsLabel(stops int) string {
	switch stops {
	case 0:
		return "nonstop"
	case 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}

// savingsLine is empty when there is no discount to brag about.
func savingsLine(deal entity.DealResult) string {
	if deal.DiscountPercent <= 0 {
		return ""
	}
	return fmt.Sprintf("%d%% below the usual %s", deal.DiscountPercent,
		utils.FormatPrice(deal.AveragePrice, deal.Flight.Currency))
}
