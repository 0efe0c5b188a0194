package usecase

import (
	"context"
	"regexp"
	"strings"

	"vandra-service/internal/domain/entity"
	"vandra-service/pkg/reference"
	"vandra-service/pkg/utils"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	upperCodeRe = regexp.MustCompile(`\b[A-Z]{3}\b`)
	priceTextRe = regexp.MustCompile(`(?i)(?:under|below|less than|around|about|max|up to)?\s*\$\s*\d[\d,]*(?:\.\d{2})?`)

	timingKeywords = []string{"next month", "soon", "summer", "spring", "autumn", "fall", "winter", "holiday", "flexible", "anytime"}

	// Tokens that look like airport codes but are not.
	codeStopwords = map[string]bool{"USD": true, "EUR": true, "GBP": true}

	wordPatterns = compileWordPatterns(reference.CityNames(), timingKeywords, reference.OpenKeywords)
)

// KeywordPreferenceExtractor reads preferences from the user's own messages
// without a model call.
type KeywordPreferenceExtractor struct{}

// NewKeywordPreferenceExtractor creates a new heuristic extractor
func NewKeywordPreferenceExtractor() *KeywordPreferenceExtractor {
	return &KeywordPreferenceExtractor{}
}

// ExtractPreferences implements PreferenceExtractor
func (KeywordPreferenceExtractor) ExtractPreferences(ctx context.Context, transcript []entity.ChatMessage) (entity.Preferences, error) {
	prefs := entity.DefaultPreferences()

	for _, m := range transcript {
		if m.Role != entity.RoleUser {
			continue
		}
		lower := strings.ToLower(m.Content)

		if prefs.HomeAirport == "" {
			prefs.HomeAirport = findHomeAirport(m.Content, lower)
		}
		if prefs.Destinations == "" {
			prefs.Destinations = findDestination(lower)
		}
		if prefs.Timing == "" {
			prefs.Timing = findKeyword(lower, timingKeywords)
		}
		if prefs.PriceText == "" {
			prefs.PriceText = strings.TrimSpace(priceTextRe.FindString(m.Content))
		}
	}

	if v, ok := utils.ParsePriceText(prefs.PriceText); ok && prefs.PriceText != "" {
		prefs.MaxPrice = &v
	}
	prefs.Summary = keywordSummary(prefs)
	return prefs, nil
}

// findHomeAirport returns the first city phrase or upper-case code in a message.
func findHomeAirport(original, lower string) string {
	for _, city := range reference.CityNames() {
		if containsWord(lower, city) {
			return city
		}
	}
	for _, code := range upperCodeRe.FindAllString(original, -1) {
		if !codeStopwords[code] {
			return code
		}
	}
	return ""
}

func findDestination(lower string) string {
	for _, r := range reference.Regions {
		if strings.Contains(lower, r.Keyword) {
			return r.Keyword
		}
	}
	return findKeyword(lower, reference.OpenKeywords)
}

func findKeyword(lower string, keywords []string) string {
	for _, k := range keywords {
		if containsWord(lower, k) {
			return k
		}
	}
	return ""
}

// containsWord reports whether word appears in text on word boundaries.
func containsWord(text, word string) bool {
	re, ok := wordPatterns[word]
	if !ok {
		re = wordPattern(word)
	}
	return re.MatchString(text)
}

func compileWordPatterns(lists ...[]string) map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp)
	for _, words := range lists {
		for _, w := range words {
			if _, ok := patterns[w]; !ok {
				patterns[w] = wordPattern(w)
			}
		}
	}
	return patterns
}

func wordPattern(word string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
}

func keywordSummary(prefs entity.Preferences) string {
	switch {
	case prefs.Destinations != "" && prefs.MaxPrice != nil:
		return "Your " + titleCase(prefs.Destinations) + " scout, hunting deals " + prefs.PriceText
	case prefs.Destinations != "":
		return "Your " + titleCase(prefs.Destinations) + " scout"
	default:
		return entity.DefaultSummary
	}
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
