package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/date-spark/api-go/config"
	"github.com/date-spark/api-go/types"
	"github.com/date-spark/api-go/utils"
)

const googlePlacesEndpoint = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"

// PlaceController proxies nearby-search requests to Google Places so the
// API key never leaves the server.
type PlaceController struct {
	cfg      *config.AppConfig
	client   *http.Client
	endpoint string
}

func NewPlaceController(cfg *config.AppConfig) *PlaceController {
	return &PlaceController{
		cfg:      cfg,
		client:   &http.Client{Timeout: 15 * time.Second},
		endpoint: googlePlacesEndpoint,
	}
}

// GetPlaces godoc
// @Summary Search nearby places through the Google Places proxy
// @Tags places
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Param radius query number false "Search radius in meters (clamped to 500-50000)"
// @Param type query string false "Provider place type (default restaurant)"
// @Param keyword query string false "Optional keyword filter"
// @Success 200 {object} types.PlacesResponse
// @Router /places [get]
func (pc *PlaceController) GetPlaces(c *gin.Context) {
	lat := c.Query("lat")
	lng := c.Query("lng")
	if lat == "" || lng == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing lat/lng parameters"})
		return
	}

	if pc.cfg.GooglePlacesAPIKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
		return
	}

	radius := utils.ClampRadius(parseFloat(c.Query("radius")))
	placeType := c.DefaultQuery("type", "restaurant")
	keyword := c.Query("keyword")

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%s,%s", lat, lng))
	params.Set("radius", strconv.Itoa(radius))
	params.Set("type", placeType)
	params.Set("key", pc.cfg.GooglePlacesAPIKey)
	if keyword != "" {
		params.Set("keyword", keyword)
	}

	resp, err := pc.client.Get(pc.endpoint + "?" + params.Encode())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch places", "details": err.Error()})
		return
	}
	defer resp.Body.Close()

	var data types.GooglePlacesResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch places", "details": err.Error()})
		return
	}

	// ZERO_RESULTS is a legitimate empty answer, not an error.
	if data.Status != types.GoogleStatusOK && data.Status != types.GoogleStatusZeroResults {
		msg := data.ErrorMessage
		if msg == "" {
			msg = "Google Places API error"
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch places", "details": msg})
		return
	}

	results := data.Results
	if len(results) > utils.MaxPlaceResults {
		results = results[:utils.MaxPlaceResults]
	}
	places := make([]types.Place, 0, len(results))
	for _, r := range results {
		places = append(places, transformPlace(r))
	}

	c.Header("Cache-Control", "s-maxage=60, stale-while-revalidate=120")
	c.JSON(http.StatusOK, types.PlacesResponse{Places: places})
}

// transformPlace reduces a provider result to the app's Place shape,
// bounding photos to a single reference.
func transformPlace(r types.GooglePlaceResult) types.Place {
	p := types.Place{
		ID:       r.PlaceID,
		Name:     r.Name,
		Rating:   r.Rating,
		Location: types.Coordinates{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
		Photos:   []string{},
		Types:    r.Types,
	}
	if r.UserRatingsTotal != nil {
		p.UserRatingsTotal = *r.UserRatingsTotal
	}
	p.PriceLevel = r.PriceLevel
	if r.Vicinity != nil {
		p.Vicinity = *r.Vicinity
	}
	for _, photo := range r.Photos {
		if len(p.Photos) == utils.MaxPhotoRefs {
			break
		}
		p.Photos = append(p.Photos, photo.PhotoReference)
	}
	if r.OpeningHours != nil {
		p.OpenNow = r.OpeningHours.OpenNow
	}
	return p
}

// Helper functions for parsing query parameters
func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val
}
