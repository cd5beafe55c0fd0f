package types

// Idea is a generated multi-place suggestion for an outing. Ideas are
// immutable after creation and persisted verbatim when the user saves one.
// PlaceIDs references places from the candidate set the idea was generated
// from, in visit order.
type Idea struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	PlaceIDs      []string `json:"placeIds"`
	EstimatedCost string   `json:"estimatedCost"`
	Duration      string   `json:"duration"`
}

// IdeasRequest is the body of the ideas proxy and of the pipeline's
// generate endpoint.
type IdeasRequest struct {
	Places  []Place     `json:"places"`
	Filters FilterState `json:"filters"`
}

// IdeasResponse is the wire shape of the ideas proxy on success.
type IdeasResponse struct {
	Ideas []Idea `json:"ideas"`
}

// SlimPlace is the reduced place shape forwarded to the text-generation
// backend. Nullable fields stay nullable so the model is not told an
// unknown price is free.
type SlimPlace struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Types      []string `json:"types"`
	PriceLevel *int     `json:"price_level"`
	Rating     *float64 `json:"rating"`
}
