package models

// Preference is a user-supplied taste statement with a category tag. It lives
// only for the browser session; the client resubmits the full list with every
// request.
type Preference struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
}

// EntityLocation is the optional place data attached to an Entity.
type EntityLocation struct {
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	Address   string  `json:"address,omitempty"`
}

// Entity is an opaque record returned by the cultural-recommendation service.
// Immutable once fetched.
type Entity struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Location    *EntityLocation `json:"location,omitempty"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
	Score       float64         `json:"score,omitempty"`
}

// Recommendation wraps an Entity with a relevance score. The upstream search
// API provides no ranking, so the score is a constant placeholder.
type Recommendation struct {
	Entity    Entity  `json:"entity"`
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning,omitempty"`
	Affinity  string  `json:"affinity,omitempty"`
}

// CrossDomainInsight links one preference to a different category of
// recommendation. Recomputed on every analysis call, never stored.
type CrossDomainInsight struct {
	SourcePreference Preference `json:"source_preference"`
	TargetCategory   string     `json:"target_category"`
	Reasoning        string     `json:"reasoning"`
	Examples         []string   `json:"examples"`
}

// ItemLocation is the optional place data for an itinerary item. Coordinates
// are [longitude, latitude] pairs when present.
type ItemLocation struct {
	Name        string      `json:"name"`
	Address     string      `json:"address,omitempty"`
	Coordinates *[2]float64 `json:"coordinates,omitempty"`
}

// ItineraryItem is one activity in an itinerary. Its content is supplied
// wholesale by the generative service; no internal consistency (such as
// chronological time labels) is validated.
type ItineraryItem struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Time        string        `json:"time"`
	Location    *ItemLocation `json:"location,omitempty"`
	Category    string        `json:"category"`
	ImageURL    string        `json:"image_url,omitempty"`
	Reasoning   string        `json:"reasoning,omitempty"`
	PriceRange  string        `json:"price_range,omitempty"`
	Duration    string        `json:"duration,omitempty"`
	BookingURL  string        `json:"booking_url,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
}

// Itinerary is a structured travel plan produced from recommendations.
// Replaced wholesale on regeneration or chat-driven refinement, never
// partially mutated.
type Itinerary struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Duration        string          `json:"duration"` // "1-day" .. "7-day"
	Items           []ItineraryItem `json:"items"`
	CreatedAt       string          `json:"created_at"`
	UserPreferences []Preference    `json:"user_preferences"`
	Location        string          `json:"location,omitempty"`
	BudgetRange     string          `json:"budget_range,omitempty"`
	Theme           string          `json:"theme,omitempty"`
	ShareURL        string          `json:"share_url,omitempty"`
}

// ChatMessage is one turn in the conversational refinement thread.
type ChatMessage struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"` // "user" or "assistant"
	Content   string        `json:"content"`
	Timestamp string        `json:"timestamp"`
	Metadata  *ChatMetadata `json:"metadata,omitempty"`
}

// ChatMetadata carries the detected intent and the preference snapshot the
// assistant reply was generated against. Informational only.
type ChatMetadata struct {
	Action      string       `json:"action,omitempty"` // generate, modify, explain, refine
	Preferences []Preference `json:"preferences,omitempty"`
	Context     string       `json:"context,omitempty"`
}

// FilterOptions narrows itinerary generation. All fields optional.
type FilterOptions struct {
	Budget     string   `json:"budget,omitempty"` // low, medium, high
	Duration   string   `json:"duration,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Location   string   `json:"location,omitempty"`
	Date       string   `json:"date,omitempty"`
	GroupSize  int      `json:"group_size,omitempty"`
}
