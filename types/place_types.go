package types

// Coordinates is a single point on the map.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is a point of interest returned by a geographic search. A Place is
// immutable once fetched: the pipeline filters and copies, never mutates.
// PriceLevel and Rating are pointers because absence means unknown, which
// must not be confused with zero (an unknown price is not "free").
type Place struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Rating           *float64    `json:"rating,omitempty"`
	UserRatingsTotal int         `json:"user_ratings_total"`
	PriceLevel       *int        `json:"price_level,omitempty"`
	Vicinity         string      `json:"vicinity"`
	Location         Coordinates `json:"location"`
	Photos           []string    `json:"photos"`
	Types            []string    `json:"types"`
	OpenNow          *bool       `json:"open_now,omitempty"`
}

// Budget tiers shared by FilterState, UserPreferences and Idea.
const (
	BudgetCheap    = "$"
	BudgetModerate = "$$"
	BudgetSplurge  = "$$$"
)

// FilterState carries the constraints a user picked for one screen
// session. Duration and Mood are advisory: they flow into idea generation
// but are never enforced against a Place. Indoor is tri-state: nil means
// no constraint, true requires indoor, false requires outdoor.
type FilterState struct {
	RadiusKm float64 `json:"radius"`
	Budget   string  `json:"budget,omitempty"`
	Duration string  `json:"duration,omitempty"`
	Mood     string  `json:"mood,omitempty"`
	Indoor   *bool   `json:"indoor,omitempty"`
}

// PlacesResponse is the wire shape of the places proxy on success.
type PlacesResponse struct {
	Places []Place `json:"places"`
}
