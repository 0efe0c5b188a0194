package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/domain/repository"
	"vandra-service/pkg/logger"
	"vandra-service/pkg/reference"
	"vandra-service/pkg/utils"
)

// PreferenceExtractor turns an onboarding transcript into travel preferences
type PreferenceExtractor interface {
	ExtractPreferences(ctx context.Context, transcript []entity.ChatMessage) (entity.Preferences, error)
}

// LLMPreferenceExtractor asks the chat model to summarise the transcript as JSON
type LLMPreferenceExtractor struct {
	chat   repository.ChatCompleter
	logger logger.Logger
}

// NewLLMPreferenceExtractor creates a new model-backed extractor
func NewLLMPreferenceExtractor(chat repository.ChatCompleter, logger logger.Logger) *LLMPreferenceExtractor {
	return &LLMPreferenceExtractor{
		chat:   chat,
		logger: logger,
	}
}

// extractedPreferences mirrors the model's JSON; any field may be null.
type extractedPreferences struct {
	HomeAirport  *string `json:"homeAirport"`
	Destinations *string `json:"destinations"`
	Timing       *string `json:"timing"`
	PriceText    *string `json:"priceText"`
	MaxPrice     any     `json:"maxPrice"`
	Summary      *string `json:"summary"`
}

// ExtractPreferences implements PreferenceExtractor. Output that is not valid
// JSON yields default preferences; only a failed model call is an error.
func (e *LLMPreferenceExtractor) ExtractPreferences(ctx context.Context, transcript []entity.ChatMessage) (entity.Preferences, error) {
	reply, err := e.chat.Complete(ctx, EXTRACTION_PROMPT, []entity.ChatMessage{
		{Role: entity.RoleUser, Content: renderTranscript(transcript)},
	}, EXTRACTION_MAX_TOKENS)
	if err != nil {
		return entity.Preferences{}, fmt.Errorf("extract preferences: %w", err)
	}

	var raw extractedPreferences
	if err := json.Unmarshal([]byte(utils.StripCodeFence(reply)), &raw); err != nil {
		e.logger.Warn("Failed to parse preferences", "reply", reply, "error", err)
		return entity.DefaultPreferences(), nil
	}

	prefs := entity.Preferences{
		HomeAirport:  deref(raw.HomeAirport),
		Destinations: deref(raw.Destinations),
		Timing:       deref(raw.Timing),
		PriceText:    deref(raw.PriceText),
		Summary:      deref(raw.Summary),
	}
	if v, ok := raw.MaxPrice.(float64); ok {
		prefs.MaxPrice = &v
	}
	return prefs, nil
}

func renderTranscript(transcript []entity.ChatMessage) string {
	parts := make([]string, len(transcript))
	for i, m := range transcript {
		parts[i] = m.Role + ": " + m.Content
	}
	return "Here's the conversation:\n\n" + strings.Join(parts, "\n\n")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var airportCodeRe = regexp.MustCompile(`^[a-z]{3}$`)

// NormalizeAirportCode resolves free text to an airport code: a three-letter
// code as-is, then a known city, then fallback.
func NormalizeAirportCode(input, fallback string) string {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return fallback
	}
	if airportCodeRe.MatchString(normalized) {
		return strings.ToUpper(normalized)
	}
	if code, ok := reference.LookupCity(normalized); ok {
		return code
	}
	return fallback
}

// ParseMaxPrice prefers a positive numeric budget and otherwise reads the
// first amount out of the price wording.
func ParseMaxPrice(priceText string, maxPrice *float64) *float64 {
	if maxPrice != nil && *maxPrice > 0 {
		v := *maxPrice
		return &v
	}
	if priceText == "" {
		return nil
	}
	if v, ok := utils.ParsePriceText(priceText); ok {
		return &v
	}
	return nil
}
