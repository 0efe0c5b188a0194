package reference

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"

	"github.com/jszwec/csvutil"
)

//go:embed data/airports.csv
var airportsCSV []byte

// AirportRecord is one row of the bundled airport seed file.
type AirportRecord struct {
	Code      string  `csv:"code"`
	Name      string  `csv:"name"`
	City      string  `csv:"city"`
	Country   string  `csv:"country"`
	Latitude  float64 `csv:"latitude"`
	Longitude float64 `csv:"longitude"`
	Timezone  string  `csv:"timezone"`
}

// SeedAirports decodes the bundled airport list.
func SeedAirports() ([]AirportRecord, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(bytes.NewReader(airportsCSV)))
	if err != nil {
		return nil, fmt.Errorf("failed to read airport seed header: %w", err)
	}

	var airports []AirportRecord
	if err := dec.Decode(&airports); err != nil {
		return nil, fmt.Errorf("failed to decode airport seed: %w", err)
	}
	return airports, nil
}
