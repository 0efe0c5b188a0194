package usecase

import (
	"strings"
	"time"

	"vandra-service/internal/domain/entity"
	"vandra-service/pkg/utils"
)

const (
	maxSearchDates    = 5
	searchDateStep    = 2
	seasonMinStart    = 2
	seasonWeeks       = 12
	winterWeeks       = 8
	defaultStartWeeks = 2
	defaultEndWeeks   = 8
)

// SearchDates turns the alert's timing wording and date bounds into at most
// five departure dates, two weeks apart, formatted YYYY-MM-DD.
func SearchDates(alert *entity.FlightAlert, now time.Time) []string {
	timing := strings.ToLower(alert.TimingText)
	month := now.Month()

	start, end := defaultStartWeeks, defaultEndWeeks

	switch {
	case strings.Contains(timing, "soon") || strings.Contains(timing, "next month"):
		start, end = 1, 6
	case strings.Contains(timing, "summer"):
		if month < time.June {
			start = seasonStart(now, time.June)
			end = start + seasonWeeks
		} else if month <= time.August {
			start, end = 2, 10
		}
	case strings.Contains(timing, "spring"):
		if month < time.March {
			start = seasonStart(now, time.March)
			end = start + seasonWeeks
		}
	case strings.Contains(timing, "fall") || strings.Contains(timing, "autumn"):
		if month < time.September {
			start = seasonStart(now, time.September)
			end = start + seasonWeeks
		}
	case strings.Contains(timing, "winter") || strings.Contains(timing, "holiday"):
		if month < time.December {
			start = seasonStart(now, time.December)
			end = start + winterWeeks
		}
	case strings.Contains(timing, "flexible") || strings.Contains(timing, "anytime"):
		start, end = 2, 12
	}

	if alert.DepartureAfter != nil {
		start = max(1, utils.WeeksUntil(now, *alert.DepartureAfter))
	}
	if alert.DepartureBefore != nil {
		end = min(end, utils.WeeksUntil(now, *alert.DepartureBefore))
	}

	var dates []string
	for week := start; week <= end && len(dates) < maxSearchDates; week += searchDateStep {
		dates = append(dates, utils.FormatDate(now.AddDate(0, 0, week*7)))
	}
	return dates
}

// seasonStart is the number of weeks until the first of month this year,
// never less than two.
func seasonStart(now time.Time, month time.Month) int {
	first := time.Date(now.Year(), month, 1, 0, 0, 0, 0, now.Location())
	return max(seasonMinStart, utils.WeeksUntil(now, first))
}
