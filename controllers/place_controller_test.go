package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/date-spark/api-go/config"
	"github.com/date-spark/api-go/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func placesRouter(pc *PlaceController) *gin.Engine {
	r := gin.New()
	r.GET("/api/places", pc.GetPlaces)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetPlacesMissingCoordinates(t *testing.T) {
	pc := NewPlaceController(&config.AppConfig{GooglePlacesAPIKey: "test-key"})
	r := placesRouter(pc)

	for _, target := range []string{"/api/places", "/api/places?lat=52.52", "/api/places?lng=13.40"} {
		w := doRequest(t, r, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "target %s", target)
		assert.Contains(t, w.Body.String(), "Missing lat/lng parameters")
	}
}

func TestGetPlacesMissingAPIKey(t *testing.T) {
	pc := NewPlaceController(&config.AppConfig{})
	r := placesRouter(pc)

	w := doRequest(t, r, http.MethodGet, "/api/places?lat=52.52&lng=13.40", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Server configuration error")
}

func TestGetPlacesTransformAndBounds(t *testing.T) {
	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "52.52,13.4", q.Get("location"))
		assert.Equal(t, "5000", q.Get("radius"), "missing radius falls back to the default")
		assert.Equal(t, "cafe", q.Get("type"))
		assert.Equal(t, "test-key", q.Get("key"))

		results := make([]types.GooglePlaceResult, 0, 45)
		for i := 0; i < 45; i++ {
			results = append(results, types.GooglePlaceResult{
				PlaceID: fmt.Sprintf("g-%d", i),
				Name:    fmt.Sprintf("Place %d", i),
				Types:   []string{"cafe"},
				Photos: []types.Photo{
					{PhotoReference: "ref-a"},
					{PhotoReference: "ref-b"},
				},
			})
		}
		json.NewEncoder(w).Encode(types.GooglePlacesResponse{Results: results, Status: types.GoogleStatusOK})
	}))
	defer google.Close()

	pc := NewPlaceController(&config.AppConfig{GooglePlacesAPIKey: "test-key"})
	pc.endpoint = google.URL
	r := placesRouter(pc)

	w := doRequest(t, r, http.MethodGet, "/api/places?lat=52.52&lng=13.4&type=cafe", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Cache-Control"), "s-maxage=60")

	var resp types.PlacesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Places, 40)
	assert.Equal(t, "g-0", resp.Places[0].ID)
	assert.Equal(t, []string{"ref-a"}, resp.Places[0].Photos, "photos are bounded to one reference")
}

func TestGetPlacesRadiusClamped(t *testing.T) {
	var gotRadius string
	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRadius = r.URL.Query().Get("radius")
		json.NewEncoder(w).Encode(types.GooglePlacesResponse{Status: types.GoogleStatusOK})
	}))
	defer google.Close()

	pc := NewPlaceController(&config.AppConfig{GooglePlacesAPIKey: "test-key"})
	pc.endpoint = google.URL
	r := placesRouter(pc)

	doRequest(t, r, http.MethodGet, "/api/places?lat=52.52&lng=13.4&radius=99999999", nil)
	assert.Equal(t, "50000", gotRadius)

	doRequest(t, r, http.MethodGet, "/api/places?lat=52.52&lng=13.4&radius=10", nil)
	assert.Equal(t, "500", gotRadius)
}

func TestGetPlacesZeroResults(t *testing.T) {
	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(types.GooglePlacesResponse{Status: types.GoogleStatusZeroResults})
	}))
	defer google.Close()

	pc := NewPlaceController(&config.AppConfig{GooglePlacesAPIKey: "test-key"})
	pc.endpoint = google.URL
	r := placesRouter(pc)

	w := doRequest(t, r, http.MethodGet, "/api/places?lat=52.52&lng=13.4", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.PlacesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Places)
}

func TestGetPlacesProviderError(t *testing.T) {
	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(types.GooglePlacesResponse{
			Status:       "REQUEST_DENIED",
			ErrorMessage: "The provided API key is invalid.",
		})
	}))
	defer google.Close()

	pc := NewPlaceController(&config.AppConfig{GooglePlacesAPIKey: "bad-key"})
	pc.endpoint = google.URL
	r := placesRouter(pc)

	w := doRequest(t, r, http.MethodGet, "/api/places?lat=52.52&lng=13.4", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "The provided API key is invalid.")
}

func TestGetPlacesKeywordPassthrough(t *testing.T) {
	var gotKeyword string
	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKeyword = r.URL.Query().Get("keyword")
		json.NewEncoder(w).Encode(types.GooglePlacesResponse{Status: types.GoogleStatusOK})
	}))
	defer google.Close()

	pc := NewPlaceController(&config.AppConfig{GooglePlacesAPIKey: "test-key"})
	pc.endpoint = google.URL
	r := placesRouter(pc)

	doRequest(t, r, http.MethodGet, "/api/places?lat=52.52&lng=13.4&keyword=vegan", nil)
	assert.Equal(t, "vegan", gotKeyword)
}
