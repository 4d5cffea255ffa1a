package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nest-quest/api-go/controllers"
)

func SetupUtilRoutes(r *gin.Engine, auth gin.HandlerFunc, utilController *controllers.UtilController) {
	address := r.Group("/utils/address")
	address.Use(auth)
	{
		address.GET("/autocomplete", utilController.GetAddressSuggestions)
		address.GET("/details/:place_id", utilController.GetPlaceDetails)
	}
}
