package types

// Provider status values the proxy distinguishes. ZERO_RESULTS is a
// legitimate empty answer, every other non-OK status is an upstream error.
const (
	GoogleStatusOK          = "OK"
	GoogleStatusZeroResults = "ZERO_RESULTS"
)

type GooglePlacesResponse struct {
	Results      []GooglePlaceResult `json:"results"`
	Status       string              `json:"status"`
	ErrorMessage string              `json:"error_message,omitempty"`
}

type GooglePlaceResult struct {
	PlaceID          string        `json:"place_id"`
	Name             string        `json:"name"`
	Rating           *float64      `json:"rating,omitempty"`
	UserRatingsTotal *int          `json:"user_ratings_total,omitempty"`
	PriceLevel       *int          `json:"price_level,omitempty"`
	Vicinity         *string       `json:"vicinity,omitempty"`
	Geometry         Geometry      `json:"geometry"`
	Photos           []Photo       `json:"photos,omitempty"`
	Types            []string      `json:"types"`
	OpeningHours     *OpeningHours `json:"opening_hours,omitempty"`
}

type Geometry struct {
	Location Location `json:"location"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type OpeningHours struct {
	OpenNow *bool `json:"open_now,omitempty"`
}

type Photo struct {
	Height         int    `json:"height"`
	Width          int    `json:"width"`
	PhotoReference string `json:"photo_reference"`
}
