package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/date-spark/api-go/config"
	"github.com/date-spark/api-go/types"
	"github.com/date-spark/api-go/utils"
)

// PlaceFetcher resolves a geographic query into a bounded list of place
// candidates, from the backend proxy in live mode or from the local seed
// dataset in mock mode. Results are cached for a short window under a
// coordinate-bucketed key; empty result lists are cached too, so a
// legitimate zero-results answer is not re-queried within the TTL.
type PlaceFetcher struct {
	cfg    *config.AppConfig
	cache  *PlaceCache
	client *http.Client
	log    *zap.Logger
}

func NewPlaceFetcher(cfg *config.AppConfig, cache *PlaceCache, log *zap.Logger) *PlaceFetcher {
	return &PlaceFetcher{
		cfg:    cfg,
		cache:  cache,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log,
	}
}

// FetchPlaces returns candidates around (lat, lng) within radiusMeters
// matching the provider type token. Live-mode failures surface as typed
// errors; mock mode cannot fail.
func (f *PlaceFetcher) FetchPlaces(ctx context.Context, lat, lng float64, radiusMeters int, placeType string) ([]types.Place, error) {
	if placeType == "" {
		placeType = GenericPlaceType
	}

	key := PlaceCacheKey(lat, lng, radiusMeters, placeType)
	if cached, ok := f.cache.Get(key); ok {
		return cached, nil
	}

	var places []types.Place
	if f.cfg.Mode() == config.ModeMock {
		places = f.fetchMock(lat, lng, radiusMeters, placeType)
	} else {
		var err error
		places, err = f.fetchLive(ctx, lat, lng, radiusMeters, placeType)
		if err != nil {
			return nil, err
		}
	}

	f.cache.Put(key, places)
	return places, nil
}

// fetchMock filters the seed dataset by great-circle distance and by the
// category tag table.
func (f *PlaceFetcher) fetchMock(lat, lng float64, radiusMeters int, placeType string) []types.Place {
	radiusKm := float64(radiusMeters) / 1000
	out := make([]types.Place, 0)
	for _, p := range mockPlaces() {
		if utils.HaversineKm(lat, lng, p.Location.Lat, p.Location.Lng) > radiusKm {
			continue
		}
		if !matchesPlaceType(p, placeType) {
			continue
		}
		out = append(out, p)
	}
	f.log.Debug("mock place search",
		zap.String("type", placeType),
		zap.Int("radius_m", radiusMeters),
		zap.Int("results", len(out)))
	return out
}

func (f *PlaceFetcher) fetchLive(ctx context.Context, lat, lng float64, radiusMeters int, placeType string) ([]types.Place, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("radius", strconv.Itoa(radiusMeters))
	params.Set("type", placeType)
	endpoint := fmt.Sprintf("%s/places?%s", f.cfg.ProxyBaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, types.NetworkError("building places request", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, types.NetworkError("places backend unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, types.NetworkError("reading places response", err)
	}

	if resp.StatusCode != http.StatusOK {
		f.log.Warn("places backend error",
			zap.Int("status", resp.StatusCode),
			zap.String("type", placeType))
		if cfgErr := backendConfigError(resp.StatusCode, body, "places"); cfgErr != nil {
			return nil, cfgErr
		}
		return nil, types.UpstreamError(
			fmt.Sprintf("places backend returned status %d", resp.StatusCode),
			string(body))
	}

	var parsed types.PlacesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, types.MalformedResponseError("places response is not valid JSON", string(body))
	}

	places := parsed.Places
	if len(places) > utils.MaxPlaceResults {
		places = places[:utils.MaxPlaceResults]
	}
	for i := range places {
		if len(places[i].Photos) > utils.MaxPhotoRefs {
			places[i].Photos = places[i].Photos[:utils.MaxPhotoRefs]
		}
	}
	return places, nil
}

// backendConfigError recognizes the proxy's missing-server-key answer, a
// 500 with the fixed "Server configuration error" body. That failure is a
// deployment problem, not a transient upstream one: it maps to the
// configuration kind so callers show the persistent banner instead of
// retrying. Returns nil for every other response.
func backendConfigError(status int, body []byte, surface string) *types.PipelineError {
	if status != http.StatusInternalServerError {
		return nil
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error != "Server configuration error" {
		return nil
	}
	return types.ConfigurationError(surface + " backend is missing its server API key")
}
