package reference

import (
	"strings"
)

type cityCode struct {
	city string
	code string
}

// cityCodes is searched in order for partial matches; the order is significant.
var cityCodes = []cityCode{
	{"salt lake", "SLC"},
	{"salt lake city", "SLC"},
	{"slc", "SLC"},
	{"denver", "DEN"},
	{"new york", "JFK"},
	{"nyc", "JFK"},
	{"los angeles", "LAX"},
	{"la", "LAX"},
	{"san francisco", "SFO"},
	{"sf", "SFO"},
	{"chicago", "ORD"},
	{"seattle", "SEA"},
	{"portland", "PDX"},
	{"austin", "AUS"},
	{"miami", "MIA"},
	{"boston", "BOS"},
	{"phoenix", "PHX"},
	{"atlanta", "ATL"},
	{"dallas", "DFW"},
	{"houston", "IAH"},
	{"las vegas", "LAS"},
	{"vegas", "LAS"},
	{"washington", "DCA"},
	{"dc", "DCA"},
	{"philadelphia", "PHL"},
	{"philly", "PHL"},
	{"san diego", "SAN"},
	{"minneapolis", "MSP"},
	{"detroit", "DTW"},
	{"orlando", "MCO"},
	{"tampa", "TPA"},
	{"nashville", "BNA"},
	{"new orleans", "MSY"},
	{"honolulu", "HNL"},
	{"hawaii", "HNL"},
	{"anchorage", "ANC"},
	{"alaska", "ANC"},
}

// LookupCity resolves a lower-cased, trimmed city phrase to an airport code.
// An exact name wins; otherwise the first entry where either string contains
// the other is used.
func LookupCity(normalized string) (string, bool) {
	if normalized == "" {
		return "", false
	}
	for _, c := range cityCodes {
		if c.city == normalized {
			return c.code, true
		}
	}
	for _, c := range cityCodes {
		if strings.Contains(normalized, c.city) || strings.Contains(c.city, normalized) {
			return c.code, true
		}
	}
	return "", false
}

// CityNames lists the known city phrases in lookup order.
func CityNames() []string {
	names := make([]string, len(cityCodes))
	for i, c := range cityCodes {
		names[i] = c.city
	}
	return names
}
