package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/date-spark/api-go/config"
	"github.com/date-spark/api-go/controllers"
	"github.com/date-spark/api-go/services"
)

func SetupRoutes(r *gin.Engine, cfg *config.AppConfig, storage services.Storage, pipeline *services.Pipeline) {
	// Initialize controllers
	placeController := controllers.NewPlaceController(cfg)
	ideaController := controllers.NewIdeaController(cfg)
	discoverController := controllers.NewDiscoverController(pipeline, storage)
	memoryController := controllers.NewMemoryController(storage)
	configController := controllers.NewConfigController(cfg)

	api := r.Group("/api")
	{
		api.GET("/config/status", configController.GetStatus)

		SetupPlaceRoutes(api, placeController)
		SetupIdeaRoutes(api, ideaController, discoverController)
		SetupMemoryRoutes(api, memoryController)
	}
}
