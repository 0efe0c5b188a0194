package reference

import "slices"

var popularRoutes = map[string][]string{
	// West Coast
	"LAX": {"NRT", "HND", "CDG", "LHR", "CUN", "FCO", "BCN", "HNL", "SYD", "AKL"},
	"SFO": {"NRT", "HND", "CDG", "LHR", "CUN", "FCO", "BCN", "HNL", "TPE", "ICN"},
	"SEA": {"NRT", "HND", "CDG", "LHR", "CUN", "ANC", "HNL", "ICN", "YVR", "MEX"},
	// Mountain
	"SLC": {"CUN", "MEX", "LHR", "CDG", "AMS", "FCO", "HNL", "NRT", "PVR", "SJD"},
	"DEN": {"CUN", "MEX", "LHR", "CDG", "AMS", "FCO", "HNL", "NRT", "PVR", "SJD"},
	"PHX": {"CUN", "MEX", "LHR", "CDG", "SJD", "PVR", "GDL", "HNL", "NRT", "FCO"},
	// Central
	"ORD": {"LHR", "CDG", "FRA", "DUB", "CUN", "FCO", "BCN", "AMS", "NRT", "ICN"},
	"DFW": {"LHR", "CDG", "CUN", "MEX", "FCO", "NRT", "HKG", "GRU", "EZE", "SCL"},
	// East Coast
	"JFK": {"LHR", "CDG", "FCO", "BCN", "AMS", "DUB", "NRT", "HKG", "TLV", "ATH"},
	"BOS": {"LHR", "CDG", "DUB", "FCO", "BCN", "AMS", "LIS", "KEF", "NRT", "CUN"},
	"MIA": {"LHR", "CDG", "MAD", "BCN", "GRU", "EZE", "BOG", "SCL", "CUN", "SJU"},
	"ATL": {"LHR", "CDG", "CUN", "MEX", "FCO", "AMS", "DUB", "NRT", "SJU", "GRU"},
}

var defaultPopular = []string{"LHR", "CDG", "CUN", "FCO", "NRT", "BCN", "AMS", "MEX", "HNL", "DUB"}

// PopularDestinations returns inspiration destinations for a US origin.
func PopularDestinations(origin string) []string {
	if routes, ok := popularRoutes[origin]; ok {
		return slices.Clone(routes)
	}
	return slices.Clone(defaultPopular)
}
