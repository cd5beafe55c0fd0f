package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/date-spark/api-go/controllers"
)

func SetupIdeaRoutes(api *gin.RouterGroup, ideaController *controllers.IdeaController, discoverController *controllers.DiscoverController) {
	api.POST("/ideas", ideaController.PostIdeas)

	api.GET("/discover", discoverController.Discover)
	api.POST("/ideas/generate", discoverController.GenerateIdeas)
}
