package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/date-spark/api-go/types"
)

func newTestGenerator(offline bool, backendURL string) *IdeaGenerator {
	cfg := liveModeConfig(backendURL)
	if offline {
		cfg = mockModeConfig()
	}
	return NewIdeaGenerator(cfg, NewIdeaCache(), zap.NewNop())
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare array", `[{"title":"A"}]`, `[{"title":"A"}]`},
		{"fenced", "```json\n[{\"title\":\"A\"}]\n```", `[{"title":"A"}]`},
		{"chatty preamble", `Sure! [{"title":"A"}] Hope that helps!`, `[{"title":"A"}]`},
		{"whitespace", "  \n[{\"title\":\"A\"}]\t", `[{"title":"A"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONArray(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSONArrayNoArray(t *testing.T) {
	raw := "I cannot help with that."
	_, err := ExtractJSONArray(raw)
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.ErrMalformedResponse))

	var perr *types.PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, raw, perr.Raw, "the original text travels with the error")
}

func TestParseIdeas(t *testing.T) {
	ideas, err := ParseIdeas("Here you go:\n```json\n[{\"title\":\"A\",\"placeIds\":[\"p-1\"]}]\n```")
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Equal(t, "A", ideas[0].Title)
	assert.Equal(t, []string{"p-1"}, ideas[0].PlaceIDs)
}

func TestParseIdeasWrongShape(t *testing.T) {
	_, err := ParseIdeas(`["just", "strings", []]`)
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.ErrMalformedResponse))
}

func TestGenerateIdeasMockHeuristic(t *testing.T) {
	g := newTestGenerator(true, "")
	places := mockPlaces()

	ideas, err := g.GenerateIdeas(context.Background(), places, types.FilterState{})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(ideas), 3)
	assert.LessOrEqual(t, len(ideas), 5)

	known := make(map[string]bool, len(places))
	for _, p := range places {
		known[p.ID] = true
	}
	for _, idea := range ideas {
		assert.NotEmpty(t, idea.Title)
		require.NotEmpty(t, idea.PlaceIDs, "mock ideas always reference real candidates")
		assert.LessOrEqual(t, len(idea.PlaceIDs), 2)
		for _, id := range idea.PlaceIDs {
			assert.True(t, known[id], "idea references unknown place %s", id)
		}
	}

	// The seed set has both food and green places, so the paired idea leads.
	assert.Equal(t, "Dessert & Stroll", ideas[0].Title)
	assert.Len(t, ideas[0].PlaceIDs, 2)
}

func TestGenerateIdeasMockPadsToThree(t *testing.T) {
	g := newTestGenerator(true, "")
	places := []types.Place{
		{ID: "x-1", Name: "One", Types: []string{"store"}},
		{ID: "x-2", Name: "Two", Types: []string{"store"}},
		{ID: "x-3", Name: "Three", Types: []string{"store"}},
		{ID: "x-4", Name: "Four", Types: []string{"store"}},
	}

	ideas, err := g.GenerateIdeas(context.Background(), places, types.FilterState{})
	require.NoError(t, err)
	require.Len(t, ideas, 3)
	assert.Equal(t, "Visit One", ideas[0].Title)
	assert.Equal(t, "Visit Two", ideas[1].Title)
	assert.Equal(t, "Visit Three", ideas[2].Title)
}

func TestGenerateIdeasMockEmptyInput(t *testing.T) {
	g := newTestGenerator(true, "")
	ideas, err := g.GenerateIdeas(context.Background(), nil, types.FilterState{})
	require.NoError(t, err)
	assert.Empty(t, ideas)
}

func TestGenerateIdeasCacheHit(t *testing.T) {
	var requests int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewEncoder(w).Encode(types.IdeasResponse{Ideas: []types.Idea{{Title: "From backend"}}})
	}))
	defer ts.Close()

	g := newTestGenerator(false, ts.URL)
	places := []types.Place{{ID: "p-1", Name: "First"}}
	filters := types.FilterState{Budget: types.BudgetCheap}

	first, err := g.GenerateIdeas(context.Background(), places, filters)
	require.NoError(t, err)
	second, err := g.GenerateIdeas(context.Background(), places, filters)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, requests)

	// Changing the filters changes the key.
	_, err = g.GenerateIdeas(context.Background(), places, types.FilterState{Budget: types.BudgetSplurge})
	require.NoError(t, err)
	assert.Equal(t, 2, requests)
}

func TestGenerateIdeasLiveBoundsPlaces(t *testing.T) {
	var gotPlaces int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req types.IdeasRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			gotPlaces = len(req.Places)
		}
		json.NewEncoder(w).Encode(types.IdeasResponse{Ideas: []types.Idea{{Title: "Ok"}}})
	}))
	defer ts.Close()

	g := newTestGenerator(false, ts.URL)
	places := make([]types.Place, 0, 12)
	for i := 0; i < 12; i++ {
		places = append(places, types.Place{ID: fmt.Sprintf("p-%d", i)})
	}

	_, err := g.GenerateIdeas(context.Background(), places, types.FilterState{})
	require.NoError(t, err)
	assert.Equal(t, MaxPlacesForIdeas, gotPlaces)
}

func TestGenerateIdeasLiveBadGateway(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `{"error":"Failed to parse AI response","details":"I cannot help with that."}`)
	}))
	defer ts.Close()

	g := newTestGenerator(false, ts.URL)
	_, err := g.GenerateIdeas(context.Background(), []types.Place{{ID: "p-1"}}, types.FilterState{})
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.ErrMalformedResponse))

	var perr *types.PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "I cannot help with that.", perr.Raw)
}

func TestGenerateIdeasLiveUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	g := newTestGenerator(false, ts.URL)
	_, err := g.GenerateIdeas(context.Background(), []types.Place{{ID: "p-1"}}, types.FilterState{})
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.ErrUpstreamProvider))
}

func TestGenerateIdeasLiveMissingServerKey(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"Server configuration error"}`)
	}))
	defer ts.Close()

	g := newTestGenerator(false, ts.URL)
	_, err := g.GenerateIdeas(context.Background(), []types.Place{{ID: "p-1"}}, types.FilterState{})
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.ErrConfiguration))
}

func TestEstimateCost(t *testing.T) {
	tests := []struct {
		name   string
		levels []*int
		want   string
	}{
		{"all unknown", []*int{nil, nil}, types.BudgetModerate},
		{"cheap", []*int{intPtr(1)}, types.BudgetCheap},
		{"moderate wins over cheap", []*int{intPtr(1), intPtr(2)}, types.BudgetModerate},
		{"splurge", []*int{intPtr(3), nil}, types.BudgetSplurge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			places := make([]types.Place, 0, len(tt.levels))
			for _, l := range tt.levels {
				places = append(places, types.Place{PriceLevel: l})
			}
			assert.Equal(t, tt.want, estimateCost(places...))
		})
	}
}

func TestFallbackIdeas(t *testing.T) {
	ideas := FallbackIdeas()
	require.Len(t, ideas, 3)
	for _, idea := range ideas {
		assert.NotEmpty(t, idea.Title)
		assert.Empty(t, idea.PlaceIDs, "fallback ideas reference no fetched places")
	}
}
