package utils

// Constants
const (
	DATE_LAYOUT = "2006-01-02"
	// Provider timestamps carry no zone and are read as UTC.
	PROVIDER_TIME_LAYOUT = "2006-01-02T15:04:05"
	// Millisecond UTC timestamps as browsers print them.
	ISO_TIME_LAYOUT = "2006-01-02T15:04:05.000Z"
)
