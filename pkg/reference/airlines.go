package reference

// AirlineNames maps common IATA carrier codes to display names.
var AirlineNames = map[string]string{
	"AA": "American Airlines",
	"UA": "United Airlines",
	"DL": "Delta Air Lines",
	"WN": "Southwest Airlines",
	"B6": "JetBlue Airways",
	"AS": "Alaska Airlines",
	"NK": "Spirit Airlines",
	"F9": "Frontier Airlines",
	"G4": "Allegiant Air",
	"BA": "British Airways",
	"LH": "Lufthansa",
	"AF": "Air France",
	"KL": "KLM",
	"EK": "Emirates",
	"QR": "Qatar Airways",
	"SQ": "Singapore Airlines",
	"CX": "Cathay Pacific",
	"JL": "Japan Airlines",
	"NH": "ANA",
	"AC": "Air Canada",
	"QF": "Qantas",
	"VS": "Virgin Atlantic",
	"IB": "Iberia",
	"AZ": "ITA Airways",
	"TK": "Turkish Airlines",
	"EY": "Etihad Airways",
	"LX": "Swiss",
	"OS": "Austrian",
	"SK": "SAS",
	"AY": "Finnair",
	"TP": "TAP Portugal",
}

// AirlineName resolves a display name: the provider's carrier dictionary wins,
// then the static table, then the code itself.
func AirlineName(code string, carriers map[string]string) string {
	if name, ok := carriers[code]; ok && name != "" {
		return name
	}
	if name, ok := AirlineNames[code]; ok {
		return name
	}
	return code
}
