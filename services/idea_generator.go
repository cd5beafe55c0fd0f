package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/date-spark/api-go/config"
	"github.com/date-spark/api-go/types"
)

// MaxPlacesForIdeas bounds how many candidates are sent to the
// text-generation backend.
const MaxPlacesForIdeas = 8

// Tag tables driving the offline heuristic: each idea archetype draws
// from places whose tags hit its set.
var (
	foodTags     = tagSet("restaurant", "cafe", "bakery", "food", "meal_takeaway")
	strollTags   = tagSet("park", "campground", "natural_feature")
	cultureTags  = tagSet("museum", "art_gallery", "tourist_attraction")
	activityTags = tagSet("bowling_alley", "movie_theater", "night_club", "bar", "amusement_park")
)

// IdeaGenerator turns a (places, filters) pair into a short list of date
// ideas, via the ideas proxy in live mode or a deterministic heuristic in
// mock mode. Results are cached; live failures surface as typed errors so
// callers can substitute FallbackIdeas, mock mode never errors.
type IdeaGenerator struct {
	cfg    *config.AppConfig
	cache  *IdeaCache
	client *http.Client
	log    *zap.Logger
}

func NewIdeaGenerator(cfg *config.AppConfig, cache *IdeaCache, log *zap.Logger) *IdeaGenerator {
	return &IdeaGenerator{
		cfg:    cfg,
		cache:  cache,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
	}
}

// GenerateIdeas returns 3-5 suggestions nominally. A cache hit returns the
// prior result unchanged.
func (g *IdeaGenerator) GenerateIdeas(ctx context.Context, places []types.Place, filters types.FilterState) ([]types.Idea, error) {
	key := IdeaCacheKey(places, filters)
	if cached, ok := g.cache.Get(key); ok {
		return cached, nil
	}

	var ideas []types.Idea
	if g.cfg.Mode() == config.ModeMock {
		ideas = g.generateMock(places, filters)
	} else {
		var err error
		ideas, err = g.generateLive(ctx, places, filters)
		if err != nil {
			return nil, err
		}
	}

	g.cache.Put(key, ideas)
	return ideas, nil
}

func (g *IdeaGenerator) generateLive(ctx context.Context, places []types.Place, filters types.FilterState) ([]types.Idea, error) {
	subset := places
	if len(subset) > MaxPlacesForIdeas {
		subset = subset[:MaxPlacesForIdeas]
	}

	payload, err := json.Marshal(types.IdeasRequest{Places: subset, Filters: filters})
	if err != nil {
		return nil, types.NetworkError("encoding ideas request", err)
	}

	endpoint := g.cfg.ProxyBaseURL + "/ideas"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, types.NetworkError("building ideas request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, types.NetworkError("ideas backend unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, types.NetworkError("reading ideas response", err)
	}

	if resp.StatusCode == http.StatusBadGateway {
		// The proxy already ran the recovery chain and failed; its body
		// carries the raw model text for diagnostics.
		var upstream struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		_ = json.Unmarshal(body, &upstream)
		msg := upstream.Error
		if msg == "" {
			msg = "ideas backend could not parse the model output"
		}
		return nil, types.MalformedResponseError(msg, upstream.Details)
	}
	if resp.StatusCode != http.StatusOK {
		if cfgErr := backendConfigError(resp.StatusCode, body, "ideas"); cfgErr != nil {
			return nil, cfgErr
		}
		return nil, types.UpstreamError(
			fmt.Sprintf("ideas backend returned status %d", resp.StatusCode),
			string(body))
	}

	var parsed types.IdeasResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, types.MalformedResponseError("ideas response is not valid JSON", string(body))
	}
	return parsed.Ideas, nil
}

// generateMock assembles ideas deterministically from the candidates:
// a dessert-and-stroll pair, a culture stop, an evening outing, then
// single-place visits in input order until three ideas exist or the
// candidates run out. Every referenced id comes from the input set.
func (g *IdeaGenerator) generateMock(places []types.Place, filters types.FilterState) []types.Idea {
	used := make(map[string]bool, len(places))
	ideas := make([]types.Idea, 0, 5)

	food := pickPlace(places, used, foodTags)
	stroll := pickPlace(places, used, strollTags)
	if food != nil && stroll != nil {
		used[food.ID], used[stroll.ID] = true, true
		ideas = append(ideas, types.Idea{
			Title:         "Dessert & Stroll",
			Description:   fmt.Sprintf("Share something sweet at %s, then wander over to %s together.", food.Name, stroll.Name),
			PlaceIDs:      []string{food.ID, stroll.ID},
			EstimatedCost: estimateCost(*food, *stroll),
			Duration:      "2-3 hours",
		})
	}

	if culture := pickPlace(places, used, cultureTags); culture != nil {
		used[culture.ID] = true
		ideas = append(ideas, types.Idea{
			Title:         "Culture Stop",
			Description:   fmt.Sprintf("Take your time exploring %s and compare favourites afterwards.", culture.Name),
			PlaceIDs:      []string{culture.ID},
			EstimatedCost: estimateCost(*culture),
			Duration:      "2 hours",
		})
	}

	if outing := pickPlace(places, used, activityTags); outing != nil {
		used[outing.ID] = true
		ideas = append(ideas, types.Idea{
			Title:         "Evening Outing",
			Description:   fmt.Sprintf("Head to %s and let the evening take its course.", outing.Name),
			PlaceIDs:      []string{outing.ID},
			EstimatedCost: estimateCost(*outing),
			Duration:      "2-3 hours",
		})
	}

	for _, p := range places {
		if len(ideas) >= 3 {
			break
		}
		if used[p.ID] {
			continue
		}
		used[p.ID] = true
		ideas = append(ideas, types.Idea{
			Title:         fmt.Sprintf("Visit %s", p.Name),
			Description:   fmt.Sprintf("Spend some easy time together at %s.", p.Name),
			PlaceIDs:      []string{p.ID},
			EstimatedCost: estimateCost(p),
			Duration:      "1-2 hours",
		})
	}

	if len(ideas) == 0 {
		g.log.Info("mock idea generation produced no ideas", zap.Int("candidates", len(places)))
	}
	return ideas
}

// pickPlace returns the first place whose tags hit the set and which is
// not already used. Nil when nothing matches.
func pickPlace(places []types.Place, used map[string]bool, tags map[string]bool) *types.Place {
	for i := range places {
		if used[places[i].ID] {
			continue
		}
		for _, t := range places[i].Types {
			if tags[t] {
				return &places[i]
			}
		}
	}
	return nil
}

// estimateCost maps the highest known price level among the idea's places
// to a budget tier. All-unknown prices read as moderate.
func estimateCost(places ...types.Place) string {
	maxLevel := -1
	for _, p := range places {
		if p.PriceLevel != nil && *p.PriceLevel > maxLevel {
			maxLevel = *p.PriceLevel
		}
	}
	switch {
	case maxLevel < 0:
		return types.BudgetModerate
	case maxLevel <= 1:
		return types.BudgetCheap
	case maxLevel == 2:
		return types.BudgetModerate
	default:
		return types.BudgetSplurge
	}
}

// FallbackIdeas is the fixed built-in list substituted when a live
// generation call fails.
func FallbackIdeas() []types.Idea {
	return []types.Idea{
		{
			Title:         "Picnic in the Park",
			Description:   "Grab snacks from a nearby shop and find a quiet patch of green.",
			PlaceIDs:      []string{},
			EstimatedCost: types.BudgetCheap,
			Duration:      "2 hours",
		},
		{
			Title:         "Coffee Crawl",
			Description:   "Pick two cafés within walking distance and compare notes over a slow afternoon.",
			PlaceIDs:      []string{},
			EstimatedCost: types.BudgetCheap,
			Duration:      "2-3 hours",
		},
		{
			Title:         "Dinner & a View",
			Description:   "Book a table somewhere new, then walk to the best lookout you can find.",
			PlaceIDs:      []string{},
			EstimatedCost: types.BudgetModerate,
			Duration:      "3 hours",
		},
	}
}

// ExtractJSONArray recovers a JSON array from model output that may be
// wrapped in code fences or surrounded by commentary: fences are stripped,
// and when the trimmed text does not start with '[' the slice between the
// first '[' and the last ']' is taken.
func ExtractJSONArray(raw string) (string, error) {
	s := strings.ReplaceAll(raw, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") {
		first := strings.Index(s, "[")
		last := strings.LastIndex(s, "]")
		if first == -1 || last == -1 || last <= first {
			return "", types.MalformedResponseError("no JSON array found in model output", raw)
		}
		s = s[first : last+1]
	}
	return s, nil
}

// ParseIdeas runs the full recovery chain on raw model output: strip
// fences, slice to the array, parse, shape-check. Errors always carry the
// original text.
func ParseIdeas(raw string) ([]types.Idea, error) {
	s, err := ExtractJSONArray(raw)
	if err != nil {
		return nil, err
	}

	var ideas []types.Idea
	if err := json.Unmarshal([]byte(s), &ideas); err != nil {
		var probe any
		if probeErr := json.Unmarshal([]byte(s), &probe); probeErr == nil {
			return nil, types.MalformedResponseError("model returned an unexpected shape", raw)
		}
		return nil, types.MalformedResponseError("model output failed JSON parsing", raw)
	}
	return ideas, nil
}
