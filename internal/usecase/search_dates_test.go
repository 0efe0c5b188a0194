package usecase

import (
	"testing"
	"time"

	"vandra-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestSearchDates(t *testing.T) {
	midJanuary := time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		now    time.Time
		alert  entity.FlightAlert
		expect []string
	}{
		{
			name:   "no timing uses two to eight weeks",
			now:    midJanuary,
			expect: []string{"2025-01-29", "2025-02-12", "2025-02-26", "2025-03-12"},
		},
		{
			name:   "soon",
			now:    midJanuary,
			alert:  entity.FlightAlert{TimingText: "As soon as possible"},
			expect: []string{"2025-01-22", "2025-02-05", "2025-02-19"},
		},
		{
			name:   "spring before March starts at the season",
			now:    midJanuary,
			alert:  entity.FlightAlert{TimingText: "spring"},
			expect: []string{"2025-03-05", "2025-03-19", "2025-04-02", "2025-04-16", "2025-04-30"},
		},
		{
			name:   "summer during summer",
			now:    time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC),
			alert:  entity.FlightAlert{TimingText: "this summer"},
			expect: []string{"2025-07-24", "2025-08-07", "2025-08-21", "2025-09-04", "2025-09-18"},
		},
		{
			name:   "summer after summer falls back to default",
			now:    time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC),
			alert:  entity.FlightAlert{TimingText: "summer"},
			expect: []string{"2025-10-15", "2025-10-29", "2025-11-12", "2025-11-26"},
		},
		{
			name:   "winter close to December starts at two weeks",
			now:    time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC),
			alert:  entity.FlightAlert{TimingText: "holiday trip"},
			expect: []string{"2025-12-04", "2025-12-18", "2026-01-01", "2026-01-15", "2026-01-29"},
		},
		{
			name:   "flexible is capped at five dates",
			now:    midJanuary,
			alert:  entity.FlightAlert{TimingText: "flexible"},
			expect: []string{"2025-01-29", "2025-02-12", "2025-02-26", "2025-03-12", "2025-03-26"},
		},
		{
			name: "departure bounds narrow the window",
			now:  midJanuary,
			alert: entity.FlightAlert{
				DepartureAfter:  ptr(midJanuary.Add(22 * 24 * time.Hour)),
				DepartureBefore: ptr(midJanuary.Add(7 * 7 * 24 * time.Hour)),
			},
			expect: []string{"2025-02-12", "2025-02-26"},
		},
		{
			name:   "past departureAfter starts at one week",
			now:    midJanuary,
			alert:  entity.FlightAlert{DepartureAfter: ptr(midJanuary.AddDate(0, -1, 0))},
			expect: []string{"2025-01-22", "2025-02-05", "2025-02-19", "2025-03-05"},
		},
		{
			name:  "past departureBefore yields nothing",
			now:   midJanuary,
			alert: entity.FlightAlert{DepartureBefore: ptr(midJanuary.AddDate(0, 0, -3))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := SearchDates(&tt.alert, tt.now)
			if tt.expect == nil {
				assert.Empty(t, dates)
				return
			}
			assert.Equal(t, tt.expect, dates)
		})
	}
}
