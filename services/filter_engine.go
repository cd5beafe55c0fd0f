package services

import (
	"github.com/date-spark/api-go/types"
)

// budgetMaxPrice maps a budget tier to the highest acceptable price level.
var budgetMaxPrice = map[string]int{
	types.BudgetCheap:    1,
	types.BudgetModerate: 2,
	types.BudgetSplurge:  3,
}

// outdoorTags classifies a place as outdoor when any of its type tags hit.
var outdoorTags = tagSet("park", "campground", "natural_feature")

// ApplyFilters narrows candidates by budget and indoor/outdoor preference.
// Order-preserving, the input slice is never mutated. Category narrowing
// happens upstream by re-fetching with a mapped type, not here.
func ApplyFilters(places []types.Place, filters types.FilterState) []types.Place {
	out := make([]types.Place, 0, len(places))
	for _, p := range places {
		if !passesBudget(p, filters.Budget) {
			continue
		}
		if !passesIndoor(p, filters.Indoor) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// passesBudget excludes a place only when its price level is known AND
// exceeds the tier's maximum. Unknown price never disqualifies.
func passesBudget(p types.Place, budget string) bool {
	if budget == "" {
		return true
	}
	maxPrice, ok := budgetMaxPrice[budget]
	if !ok {
		return true
	}
	if p.PriceLevel == nil {
		return true
	}
	return *p.PriceLevel <= maxPrice
}

func passesIndoor(p types.Place, indoor *bool) bool {
	if indoor == nil {
		return true
	}
	// indoor=true rejects outdoor places, indoor=false rejects indoor ones.
	return isOutdoor(p) != *indoor
}

func isOutdoor(p types.Place) bool {
	for _, t := range p.Types {
		if outdoorTags[t] {
			return true
		}
	}
	return false
}
