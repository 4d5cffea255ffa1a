package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nest-quest/api-go/controllers"
)

// SetupListingRoutes registers the listing endpoints. Browsing is public;
// creation requires a session.
func SetupListingRoutes(r *gin.Engine, auth gin.HandlerFunc, listingController *controllers.ListingController) {
	listings := r.Group("/listings")
	{
		listings.GET("", listingController.GetListings)
		listings.GET("/:id", listingController.GetListing)
		listings.POST("", auth, listingController.CreateListing)
	}
}
