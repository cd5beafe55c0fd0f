package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/date-spark/api-go/models"
	"github.com/date-spark/api-go/services"
)

// MemoryController serves the persisted record families: memories,
// favorites and the preferences singleton. Persistence is best-effort per
// design: a failed write is logged by the store and the user action still
// completes with the record that was attempted.
type MemoryController struct {
	storage services.Storage
}

func NewMemoryController(storage services.Storage) *MemoryController {
	return &MemoryController{storage: storage}
}

type memoryRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	PlaceIDs    []string `json:"placeIds"`
	Rating      *int     `json:"rating" binding:"omitempty,min=1,max=5"`
	Notes       string   `json:"notes"`
}

type favoriteRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	PlaceIDs      []string `json:"placeIds" binding:"omitempty,max=3"`
	EstimatedCost string   `json:"estimatedCost" binding:"omitempty,oneof=$ $$ $$$"`
	Duration      string   `json:"duration"`
}

// GetMemories godoc
// @Summary List saved memories, newest first
// @Tags memories
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /memories [get]
func (mc *MemoryController) GetMemories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"memories": mc.storage.Memories()})
}

// PostMemory godoc
// @Summary Save a memory of a completed date
// @Tags memories
// @Accept json
// @Produce json
// @Param request body memoryRequest true "Memory"
// @Success 201 {object} models.Memory
// @Router /memories [post]
func (mc *MemoryController) PostMemory(c *gin.Context) {
	var req memoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memory, _ := mc.storage.AddMemory(models.Memory{
		Date:        time.Now().UTC(),
		Title:       req.Title,
		Description: req.Description,
		PlaceIDs:    req.PlaceIDs,
		Rating:      req.Rating,
		Notes:       req.Notes,
	})
	c.JSON(http.StatusCreated, memory)
}

// GetFavorites godoc
// @Summary List saved ideas, newest first
// @Tags favorites
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /favorites [get]
func (mc *MemoryController) GetFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"favorites": mc.storage.Favorites()})
}

// PostFavorite godoc
// @Summary Save an idea verbatim as a favorite
// @Tags favorites
// @Accept json
// @Produce json
// @Param request body favoriteRequest true "Idea to save"
// @Success 201 {object} models.Favorite
// @Router /favorites [post]
func (mc *MemoryController) PostFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	favorite, _ := mc.storage.AddFavorite(models.Favorite{
		SavedAt:       time.Now().UTC(),
		Title:         req.Title,
		Description:   req.Description,
		PlaceIDs:      req.PlaceIDs,
		EstimatedCost: req.EstimatedCost,
		Duration:      req.Duration,
	})
	c.JSON(http.StatusCreated, favorite)
}

// GetPreferences godoc
// @Summary Read the preferences singleton
// @Tags preferences
// @Produce json
// @Success 200 {object} models.Preference
// @Router /preferences [get]
func (mc *MemoryController) GetPreferences(c *gin.Context) {
	prefs := mc.storage.Preferences()
	if prefs == nil {
		prefs = &models.Preference{Radius: models.DefaultRadiusKm}
	}
	c.JSON(http.StatusOK, prefs)
}

// PutPreferences godoc
// @Summary Overwrite the preferences singleton wholesale
// @Tags preferences
// @Accept json
// @Produce json
// @Param request body models.Preference true "Preferences"
// @Success 200 {object} models.Preference
// @Router /preferences [put]
func (mc *MemoryController) PutPreferences(c *gin.Context) {
	var prefs models.Preference
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if prefs.Radius <= 0 {
		prefs.Radius = models.DefaultRadiusKm
	}

	_ = mc.storage.SavePreferences(prefs)
	c.JSON(http.StatusOK, prefs)
}
