package services

import (
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/date-spark/api-go/types"
)

// CacheTTL is the time-to-live shared by both pipeline caches. Entries
// older than this are treated as absent on lookup; go-cache evicts them
// lazily, there is no background sweep requirement.
const CacheTTL = 60 * time.Second

const cacheCleanupInterval = 5 * time.Minute

// PlaceCache remembers recent place queries so repeated searches within a
// short window skip the network. Owned by the fetcher it is injected into;
// never package-level state.
type PlaceCache struct {
	c *gocache.Cache
}

func NewPlaceCache() *PlaceCache {
	return NewPlaceCacheTTL(CacheTTL)
}

// NewPlaceCacheTTL exists so tests can shrink the expiry window.
func NewPlaceCacheTTL(ttl time.Duration) *PlaceCache {
	return &PlaceCache{c: gocache.New(ttl, cacheCleanupInterval)}
}

// PlaceCacheKey buckets coordinates at 3 decimal places (~100 m) so GPS
// jitter between repeated searches maps onto the same entry, while
// distinct radius or type values stay independent.
func PlaceCacheKey(lat, lng float64, radiusMeters int, placeType string) string {
	return fmt.Sprintf("%.3f,%.3f,%d,%s", lat, lng, radiusMeters, placeType)
}

func (pc *PlaceCache) Get(key string) ([]types.Place, bool) {
	v, found := pc.c.Get(key)
	if !found {
		return nil, false
	}
	places, ok := v.([]types.Place)
	return places, ok
}

func (pc *PlaceCache) Put(key string, places []types.Place) {
	pc.c.Set(key, places, gocache.DefaultExpiration)
}

// IdeaCache remembers generated idea lists per candidate-set + filters.
type IdeaCache struct {
	c *gocache.Cache
}

func NewIdeaCache() *IdeaCache {
	return NewIdeaCacheTTL(CacheTTL)
}

func NewIdeaCacheTTL(ttl time.Duration) *IdeaCache {
	return &IdeaCache{c: gocache.New(ttl, cacheCleanupInterval)}
}

// IdeaCacheKey is a stable JSON serialization of the first ten place ids
// in input order plus the filter state.
func IdeaCacheKey(places []types.Place, filters types.FilterState) string {
	ids := make([]string, 0, 10)
	for _, p := range places {
		if len(ids) == 10 {
			break
		}
		ids = append(ids, p.ID)
	}
	key := struct {
		PlaceIDs []string          `json:"placeIds"`
		Filters  types.FilterState `json:"filters"`
	}{ids, filters}
	b, err := json.Marshal(key)
	if err != nil {
		return fmt.Sprintf("%v|%v", ids, filters)
	}
	return string(b)
}

func (ic *IdeaCache) Get(key string) ([]types.Idea, bool) {
	v, found := ic.c.Get(key)
	if !found {
		return nil, false
	}
	ideas, ok := v.([]types.Idea)
	return ideas, ok
}

func (ic *IdeaCache) Put(key string, ideas []types.Idea) {
	ic.c.Set(key, ideas, gocache.DefaultExpiration)
}
