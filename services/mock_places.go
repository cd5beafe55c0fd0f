package services

import (
	"strings"

	"github.com/date-spark/api-go/types"
)

// GenericPlaceType is the sentinel provider type that matches every place.
const GenericPlaceType = "point_of_interest"

// categoryTypeTokens maps a UI category chip to the provider type token
// used for search.
var categoryTypeTokens = map[string]string{
	"food":     "restaurant",
	"culture":  "museum",
	"walk":     "park",
	"activity": "bowling_alley",
	"random":   GenericPlaceType,
}

// ProviderTypeForCategory resolves a category chip to its provider type
// token. Unknown or empty categories fall back to the generic token.
func ProviderTypeForCategory(category string) string {
	if token, ok := categoryTypeTokens[strings.ToLower(strings.TrimSpace(category))]; ok {
		return token
	}
	return GenericPlaceType
}

// typeTokenTags lists, per provider type token, the place tags that count
// as a match in mock mode. A lookup table instead of substring checks so
// the behavior is auditable in isolation.
var typeTokenTags = map[string]map[string]bool{
	"restaurant":    tagSet("restaurant", "cafe", "bakery", "food", "meal_takeaway"),
	"museum":        tagSet("museum", "art_gallery", "tourist_attraction"),
	"park":          tagSet("park", "campground", "natural_feature"),
	"bowling_alley": tagSet("bowling_alley", "movie_theater", "night_club", "bar", "amusement_park"),
}

func matchesPlaceType(p types.Place, token string) bool {
	if token == GenericPlaceType {
		return true
	}
	allowed, known := typeTokenTags[token]
	if !known {
		// Tokens outside the table still match their own tag exactly.
		for _, t := range p.Types {
			if t == token {
				return true
			}
		}
		return false
	}
	for _, t := range p.Types {
		if allowed[t] {
			return true
		}
	}
	return false
}

func tagSet(tags ...string) map[string]bool {
	s := make(map[string]bool, len(tags))
	for _, t := range tags {
		s[t] = true
	}
	return s
}

// mockPlaces returns a fresh copy of the seed dataset: ten places around
// central Berlin covering every category the heuristics know about.
// Callers get copies so the seeds stay immutable.
func mockPlaces() []types.Place {
	seeds := []types.Place{
		{
			ID:               "ber-1",
			Name:             "Café Himmel",
			Rating:           floatPtr(4.6),
			UserRatingsTotal: 284,
			PriceLevel:       intPtr(1),
			Vicinity:         "Münzstraße 12, Berlin",
			Location:         types.Coordinates{Lat: 52.5246, Lng: 13.4024},
			Types:            []string{"cafe", "food"},
			OpenNow:          boolPtr(true),
		},
		{
			ID:               "ber-2",
			Name:             "Tiergarten Uferweg",
			Rating:           floatPtr(4.8),
			UserRatingsTotal: 1520,
			Vicinity:         "Straße des 17. Juni, Berlin",
			Location:         types.Coordinates{Lat: 52.5145, Lng: 13.3501},
			Types:            []string{"park", "point_of_interest"},
			OpenNow:          boolPtr(true),
		},
		{
			ID:               "ber-3",
			Name:             "Museumshof Galerie",
			Rating:           floatPtr(4.7),
			UserRatingsTotal: 932,
			PriceLevel:       intPtr(2),
			Vicinity:         "Bodestraße 1, Berlin",
			Location:         types.Coordinates{Lat: 52.5208, Lng: 13.3987},
			Types:            []string{"museum", "tourist_attraction"},
		},
		{
			ID:               "ber-4",
			Name:             "Skyview Terrace",
			Rating:           floatPtr(4.5),
			UserRatingsTotal: 611,
			PriceLevel:       intPtr(2),
			Vicinity:         "Panoramastraße 1A, Berlin",
			Location:         types.Coordinates{Lat: 52.5210, Lng: 13.4094},
			Types:            []string{"tourist_attraction", "point_of_interest"},
			OpenNow:          boolPtr(true),
		},
		{
			ID:               "ber-5",
			Name:             "Strike Neun Bowling",
			Rating:           floatPtr(4.2),
			UserRatingsTotal: 388,
			PriceLevel:       intPtr(2),
			Vicinity:         "Karl-Marx-Allee 34, Berlin",
			Location:         types.Coordinates{Lat: 52.5301, Lng: 13.4126},
			Types:            []string{"bowling_alley", "point_of_interest"},
		},
		{
			ID:               "ber-6",
			Name:             "Nachtfalter Bar",
			Rating:           floatPtr(4.4),
			UserRatingsTotal: 270,
			PriceLevel:       intPtr(2),
			Vicinity:         "Oranienstraße 170, Berlin",
			Location:         types.Coordinates{Lat: 52.5122, Lng: 13.4201},
			Types:            []string{"bar", "night_club"},
			OpenNow:          boolPtr(false),
		},
		{
			ID:               "ber-7",
			Name:             "Sweet Treats",
			Rating:           floatPtr(4.9),
			UserRatingsTotal: 178,
			PriceLevel:       intPtr(1),
			Vicinity:         "Rosenthaler Straße 46, Berlin",
			Location:         types.Coordinates{Lat: 52.5189, Lng: 13.4082},
			Types:            []string{"bakery", "cafe", "food"},
			OpenNow:          boolPtr(true),
		},
		{
			ID:               "ber-8",
			Name:             "Spreebogen Wiese",
			Rating:           floatPtr(4.6),
			UserRatingsTotal: 95,
			Vicinity:         "Ludwig-Erhard-Ufer, Berlin",
			Location:         types.Coordinates{Lat: 52.5238, Lng: 13.3896},
			Types:            []string{"natural_feature", "park"},
		},
		{
			ID:               "ber-9",
			Name:             "Lichtspiel Kino",
			Rating:           floatPtr(4.3),
			UserRatingsTotal: 502,
			PriceLevel:       intPtr(2),
			Vicinity:         "Rosa-Luxemburg-Straße 39, Berlin",
			Location:         types.Coordinates{Lat: 52.5266, Lng: 13.4111},
			Types:            []string{"movie_theater", "point_of_interest"},
		},
		{
			ID:               "ber-10",
			Name:             "Trattoria Abendrot",
			Rating:           floatPtr(4.5),
			UserRatingsTotal: 723,
			PriceLevel:       intPtr(3),
			Vicinity:         "Auguststraße 89, Berlin",
			Location:         types.Coordinates{Lat: 52.5171, Lng: 13.3950},
			Types:            []string{"restaurant", "food"},
			OpenNow:          boolPtr(false),
		},
	}

	out := make([]types.Place, len(seeds))
	copy(out, seeds)
	return out
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }
