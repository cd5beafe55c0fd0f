package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/date-spark/api-go/controllers"
)

func SetupMemoryRoutes(api *gin.RouterGroup, memoryController *controllers.MemoryController) {
	memories := api.Group("/memories")
	{
		memories.GET("", memoryController.GetMemories)
		memories.POST("", memoryController.PostMemory)
	}

	favorites := api.Group("/favorites")
	{
		favorites.GET("", memoryController.GetFavorites)
		favorites.POST("", memoryController.PostFavorite)
	}

	preferences := api.Group("/preferences")
	{
		preferences.GET("", memoryController.GetPreferences)
		preferences.PUT("", memoryController.PutPreferences)
	}
}
