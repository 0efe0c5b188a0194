package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchSetFor(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"Japan in spring", []string{"NRT", "HND", "KIX"}},
		{"somewhere in EUROPE", []string{"LHR", "CDG", "FCO", "BCN", "AMS", "DUB", "LIS"}},
		{"beach destinations", []string{"CUN", "SJU", "MBJ", "HNL", "PVR"}},
		{"tropical", []string{"CUN", "SJU", "MBJ", "HNL", "BKK", "DPS"}},
		{"", DiverseDestinations},
		{"anywhere warm", DiverseDestinations},
		{"I'm open", DiverseDestinations},
		{"Antarctica", DefaultDestinations},
		// earlier regions win when several keywords appear
		{"asia or japan", []string{"NRT", "ICN", "HKG", "SIN", "BKK", "TPE"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, SearchSetFor(tt.text))
		})
	}
}

func TestSearchSetForReturnsCopy(t *testing.T) {
	got := SearchSetFor("japan")
	got[0] = "XXX"
	assert.Equal(t, "NRT", SearchSetFor("japan")[0])
}

func TestMatchesDestinationText(t *testing.T) {
	assert.True(t, MatchesDestinationText("CDG", "Europe please"))
	assert.False(t, MatchesDestinationText("NRT", "Europe please"))
	assert.True(t, MatchesDestinationText("KEF", "europe"))
	assert.True(t, MatchesDestinationText("ZZZ", "anywhere"))
	assert.True(t, MatchesDestinationText("MIA", "somewhere warm"))
	assert.True(t, MatchesDestinationText("OGG", "beach"))
	assert.False(t, MatchesDestinationText("LHR", "beach"))
	assert.True(t, MatchesDestinationText("YVR", "Canada"))
	assert.True(t, MatchesDestinationText("SJO", "central america"))
	assert.False(t, MatchesDestinationText("LHR", ""))
}

func TestLookupCity(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"denver", "DEN", true},
		{"salt lake city", "SLC", true},
		{"flying out of seattle", "SEA", true},
		{"philly", "PHL", true},
		{"vegas", "LAS", true},
		{"gotham", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		code, ok := LookupCity(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, code, tt.in)
	}
}

func TestAirlineName(t *testing.T) {
	assert.Equal(t, "Delta", AirlineName("DL", map[string]string{"DL": "Delta"}))
	assert.Equal(t, "Delta Air Lines", AirlineName("DL", nil))
	assert.Equal(t, "ZZ", AirlineName("ZZ", nil))
}

func TestPopularDestinations(t *testing.T) {
	assert.Equal(t, "CUN", PopularDestinations("SLC")[0])
	assert.Equal(t, defaultPopular, PopularDestinations("XYZ"))
}

func TestSeedAirports(t *testing.T) {
	airports, err := SeedAirports()
	require.NoError(t, err)
	require.NotEmpty(t, airports)

	byCode := make(map[string]AirportRecord, len(airports))
	for _, a := range airports {
		byCode[a.Code] = a
	}

	slc, ok := byCode["SLC"]
	require.True(t, ok)
	assert.Equal(t, "Salt Lake City", slc.City)
	assert.Equal(t, "America/Denver", slc.Timezone)
	assert.InDelta(t, 40.7899, slc.Latitude, 0.0001)

	assert.Contains(t, byCode, "NRT")
	assert.Equal(t, "O'Hare International Airport", byCode["ORD"].Name)
}
