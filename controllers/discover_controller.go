package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/date-spark/api-go/services"
	"github.com/date-spark/api-go/types"
)

// DiscoverController exposes the discovery pipeline: locate, fetch,
// filter, and idea generation with the fallback policy applied.
type DiscoverController struct {
	pipeline *services.Pipeline
	storage  services.Storage
}

func NewDiscoverController(pipeline *services.Pipeline, storage services.Storage) *DiscoverController {
	return &DiscoverController{pipeline: pipeline, storage: storage}
}

type discoverQuery struct {
	Lat      *float64 `form:"lat"`
	Lng      *float64 `form:"lng"`
	RadiusKm float64  `form:"radius"`
	Category string   `form:"category"`
	Budget   string   `form:"budget" binding:"omitempty,oneof=$ $$ $$$"`
	Duration string   `form:"duration"`
	Mood     string   `form:"mood"`
	Indoor   *bool    `form:"indoor"`
}

// Discover godoc
// @Summary Run a place search around a coordinate with filters applied
// @Tags discover
// @Produce json
// @Param lat query number false "Latitude (falls back to the configured default location)"
// @Param lng query number false "Longitude"
// @Param radius query number false "Search radius in kilometers"
// @Param category query string false "Category chip: food, culture, walk, activity, random"
// @Param budget query string false "Budget tier: $, $$ or $$$"
// @Param indoor query boolean false "true requires indoor, false requires outdoor"
// @Success 200 {object} services.DiscoverResult
// @Router /discover [get]
func (dc *DiscoverController) Discover(c *gin.Context) {
	var q discoverQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filters := types.FilterState{
		RadiusKm: q.RadiusKm,
		Budget:   q.Budget,
		Duration: q.Duration,
		Mood:     q.Mood,
		Indoor:   q.Indoor,
	}
	dc.applyPreferenceDefaults(&filters)

	var coords *types.Coordinates
	if q.Lat != nil && q.Lng != nil {
		coords = &types.Coordinates{Lat: *q.Lat, Lng: *q.Lng}
	}

	result, err := dc.pipeline.Discover(c.Request.Context(), coords, q.Category, filters)
	if err != nil {
		respondPipelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GenerateIdeas godoc
// @Summary Generate date ideas for already-fetched candidate places
// @Tags discover
// @Accept json
// @Produce json
// @Param request body types.IdeasRequest true "Candidate places and filters"
// @Success 200 {object} map[string]interface{}
// @Router /ideas/generate [post]
func (dc *DiscoverController) GenerateIdeas(c *gin.Context) {
	var req types.IdeasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ideas, usedFallback, err := dc.pipeline.Ideas(c.Request.Context(), req.Places, req.Filters)
	response := gin.H{"ideas": ideas, "fallback": usedFallback}
	if usedFallback {
		var perr *types.PipelineError
		if errors.As(err, &perr) {
			response["reason"] = string(perr.Kind)
		}
	}
	c.JSON(http.StatusOK, response)
}

// applyPreferenceDefaults fills unset filter fields from the saved
// preferences record, read at session start.
func (dc *DiscoverController) applyPreferenceDefaults(filters *types.FilterState) {
	prefs := dc.storage.Preferences()
	if filters.RadiusKm <= 0 {
		if prefs != nil && prefs.Radius > 0 {
			filters.RadiusKm = prefs.Radius
		}
	}
	if prefs == nil {
		return
	}
	if filters.Budget == "" {
		filters.Budget = prefs.DefaultBudget
	}
	if filters.Mood == "" {
		filters.Mood = prefs.DefaultMood
	}
}

// respondPipelineError maps the error taxonomy onto HTTP statuses so
// callers can tell a failed call apart from an empty result.
func respondPipelineError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrSuperseded) {
		c.JSON(http.StatusConflict, gin.H{"error": "superseded by a newer search"})
		return
	}

	var perr *types.PipelineError
	if !errors.As(err, &perr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusInternalServerError
	switch perr.Kind {
	case types.ErrPermissionDenied:
		status = http.StatusForbidden
	case types.ErrNetwork, types.ErrUpstreamProvider, types.ErrMalformedResponse:
		status = http.StatusBadGateway
	case types.ErrConfiguration:
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"error": perr.Message, "kind": perr.Kind})
}
