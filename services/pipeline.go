package services

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/date-spark/api-go/models"
	"github.com/date-spark/api-go/types"
)

// ErrSuperseded reports that a newer search was issued while this one was
// in flight; the stale result must be dropped, not applied.
var ErrSuperseded = errors.New("result superseded by a newer request")

// Pipeline sequences locate, fetch and filter for one user action, with
// idea generation layered on already-fetched candidates. Completions are
// applied latest-request-wins: each run takes a ticket from a monotonic
// counter and a stale ticket's result is rejected instead of racing an
// out-of-order arrival into the caller.
type Pipeline struct {
	location  LocationProvider
	fetcher   *PlaceFetcher
	generator *IdeaGenerator
	log       *zap.Logger
	seq       atomic.Uint64
}

func NewPipeline(location LocationProvider, fetcher *PlaceFetcher, generator *IdeaGenerator, log *zap.Logger) *Pipeline {
	return &Pipeline{
		location:  location,
		fetcher:   fetcher,
		generator: generator,
		log:       log,
	}
}

// DiscoverResult is one completed search: the coordinate used, the
// filtered candidates, and an echo of the applied filter state.
type DiscoverResult struct {
	Location types.Coordinates `json:"location"`
	Places   []types.Place     `json:"places"`
	Filters  types.FilterState `json:"filters"`
}

// Discover runs locate → fetch → filter. A caller-supplied coordinate
// takes precedence over the location provider; a zero radius falls back
// to the default. Each step is awaited before the next begins.
func (p *Pipeline) Discover(ctx context.Context, coords *types.Coordinates, category string, filters types.FilterState) (*DiscoverResult, error) {
	ticket := p.seq.Add(1)

	var loc types.Coordinates
	if coords != nil {
		loc = *coords
	} else {
		var err error
		loc, err = p.location.Current(ctx)
		if err != nil {
			return nil, err
		}
	}

	if filters.RadiusKm <= 0 {
		filters.RadiusKm = models.DefaultRadiusKm
	}

	placeType := ProviderTypeForCategory(category)
	places, err := p.fetcher.FetchPlaces(ctx, loc.Lat, loc.Lng, int(filters.RadiusKm*1000), placeType)
	if err != nil {
		return nil, err
	}

	filtered := ApplyFilters(places, filters)

	if !p.isLatest(ticket) {
		p.log.Debug("dropping superseded search result", zap.Uint64("ticket", ticket))
		return nil, ErrSuperseded
	}

	return &DiscoverResult{Location: loc, Places: filtered, Filters: filters}, nil
}

// Ideas generates suggestions for already-fetched candidates. On a live
// failure it substitutes the fixed fallback list and still returns the
// error, so callers can show the fallback message without crashing; mock
// mode never fails.
func (p *Pipeline) Ideas(ctx context.Context, places []types.Place, filters types.FilterState) ([]types.Idea, bool, error) {
	ideas, err := p.generator.GenerateIdeas(ctx, places, filters)
	if err != nil {
		p.log.Warn("idea generation failed, substituting fallback list", zap.Error(err))
		return FallbackIdeas(), true, err
	}
	return ideas, false, nil
}

func (p *Pipeline) isLatest(ticket uint64) bool {
	return p.seq.Load() == ticket
}
