package amadeus

import (
	"encoding/json"
	"errors"
	"fmt"
)

// CodeAuthFailed marks a failed client-credentials exchange.
const CodeAuthFailed = "AUTH_FAILED"

// ProviderError is returned for any non-success provider response.
// Payload holds the raw response body.
type ProviderError struct {
	Code    string
	Status  int
	Detail  string
	Payload []byte
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("amadeus: %s (status %d): %s", e.Code, e.Status, e.Detail)
}

// IsProviderError reports whether err wraps a *ProviderError.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

type errorPayload struct {
	Errors []struct {
		// Provider codes arrive as numbers or strings.
		Code   any    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
		Status int    `json:"status"`
	} `json:"errors"`
}

func newProviderError(status int, body []byte) *ProviderError {
	pe := &ProviderError{
		Code:    "UNKNOWN",
		Status:  status,
		Detail:  "Amadeus API error",
		Payload: body,
	}

	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Errors) == 0 {
		return pe
	}

	first := payload.Errors[0]
	if first.Code != nil {
		pe.Code = fmt.Sprint(first.Code)
	}
	switch {
	case first.Detail != "":
		pe.Detail = first.Detail
	case first.Title != "":
		pe.Detail = first.Title
	}
	return pe
}
