package reference

import (
	"slices"
	"strings"
)

// Region ties a free-text keyword to the airports it stands for.
// Members is the full set used when checking whether a destination fits the
// user's wording. SearchSet is the short curated list searched when an alert
// names the region; it is nil for regions that are only matched, never searched.
type Region struct {
	Keyword   string
	Members   []string
	SearchSet []string
}

var (
	europeMembers = []string{
		"LHR", "CDG", "FCO", "BCN", "AMS", "FRA", "MAD", "MUC", "ZRH", "VIE",
		"DUB", "LIS", "ATH", "PRG", "BUD", "WAW", "CPH", "OSL", "ARN", "HEL",
		"BRU", "MXP", "VCE", "NAP", "EDI", "MAN", "KEF",
	}
	asiaMembers = []string{
		"NRT", "HND", "ICN", "HKG", "SIN", "BKK", "TPE", "PVG", "PEK", "KIX",
		"MNL", "SGN", "HAN", "KUL", "DPS", "DEL", "BOM", "CGK",
	}
	japanMembers     = []string{"NRT", "HND", "KIX", "FUK", "CTS", "NGO", "OKA"}
	mexicoMembers    = []string{"MEX", "CUN", "GDL", "PVR", "SJD", "MZT", "ACA"}
	caribbeanMembers = []string{"SJU", "MBJ", "NAS", "PUJ", "STT", "AUA", "CUR", "BGI", "GCM"}
	hawaiiMembers    = []string{"HNL", "OGG", "KOA", "LIH"}
	beachMembers     = concat(caribbeanMembers, mexicoMembers, hawaiiMembers, []string{"MIA", "TPA"})
)

// Regions is ordered: the first searchable region whose keyword appears in an
// alert's destination text decides the search set.
var Regions = []Region{
	{Keyword: "europe", Members: europeMembers, SearchSet: []string{"LHR", "CDG", "FCO", "BCN", "AMS", "DUB", "LIS"}},
	{Keyword: "asia", Members: asiaMembers, SearchSet: []string{"NRT", "ICN", "HKG", "SIN", "BKK", "TPE"}},
	{Keyword: "japan", Members: japanMembers, SearchSet: []string{"NRT", "HND", "KIX"}},
	{Keyword: "mexico", Members: mexicoMembers, SearchSet: []string{"CUN", "MEX", "PVR", "SJD"}},
	{Keyword: "caribbean", Members: caribbeanMembers, SearchSet: []string{"SJU", "MBJ", "NAS", "PUJ"}},
	{Keyword: "hawaii", Members: hawaiiMembers, SearchSet: []string{"HNL", "OGG", "KOA"}},
	{Keyword: "beach", Members: beachMembers, SearchSet: []string{"CUN", "SJU", "MBJ", "HNL", "PVR"}},
	{Keyword: "tropical", Members: beachMembers, SearchSet: []string{"CUN", "SJU", "MBJ", "HNL", "BKK", "DPS"}},
	{Keyword: "warm", Members: beachMembers},
	{Keyword: "south america", Members: []string{"GRU", "EZE", "SCL", "BOG", "LIM", "GIG", "MVD", "UIO"}},
	{Keyword: "canada", Members: []string{"YYZ", "YVR", "YUL", "YYC", "YOW"}},
	{Keyword: "australia", Members: []string{"SYD", "MEL", "BNE", "PER", "ADL"}},
	{Keyword: "central america", Members: []string{"PTY", "SJO", "GUA", "SAL", "MGA"}},
}

// OpenKeywords mark a destination text that accepts anything.
var OpenKeywords = []string{"anywhere", "flexible", "open"}

var (
	// DiverseDestinations is searched when the user is open to anywhere.
	DiverseDestinations = []string{"LHR", "CDG", "CUN", "NRT", "FCO", "MEX", "HNL"}
	// DefaultDestinations is searched when the text names nothing we recognise.
	DefaultDestinations = []string{"LHR", "CDG", "CUN", "NRT", "FCO"}
)

// SearchSetFor returns the destinations to search for a free-text preference.
func SearchSetFor(text string) []string {
	text = strings.ToLower(text)

	for _, r := range Regions {
		if r.SearchSet != nil && strings.Contains(text, r.Keyword) {
			return slices.Clone(r.SearchSet)
		}
	}

	if text == "" || containsAny(text, OpenKeywords) {
		return slices.Clone(DiverseDestinations)
	}

	return slices.Clone(DefaultDestinations)
}

// MatchesDestinationText reports whether an airport fits the user's wording,
// e.g. "CDG" fits "somewhere in Europe".
func MatchesDestinationText(code, text string) bool {
	text = strings.ToLower(text)

	for _, r := range Regions {
		if strings.Contains(text, r.Keyword) && slices.Contains(r.Members, code) {
			return true
		}
	}

	return containsAny(text, OpenKeywords)
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
