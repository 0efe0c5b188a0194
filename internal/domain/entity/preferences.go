package entity

// Chat roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the onboarding conversation.
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

// DefaultSummary is used when nothing better could be extracted.
const DefaultSummary = "Your flight deal finder"

// Preferences are the travel wishes pulled out of a conversation.
// Empty strings mean the topic never came up.
type Preferences struct {
	HomeAirport  string   `json:"homeAirport"`
	Destinations string   `json:"destinations"`
	Timing       string   `json:"timing"`
	PriceText    string   `json:"priceText"`
	MaxPrice     *float64 `json:"maxPrice"`
	Summary      string   `json:"summary"`
}

// DefaultPreferences is the fallback when extraction output is unusable.
func DefaultPreferences() Preferences {
	return Preferences{Summary: DefaultSummary}
}
