package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/date-spark/api-go/controllers"
)

func SetupPlaceRoutes(api *gin.RouterGroup, placeController *controllers.PlaceController) {
	api.GET("/places", placeController.GetPlaces)
}
