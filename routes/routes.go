package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nest-quest/api-go/config"
	"github.com/nest-quest/api-go/controllers"
	"github.com/nest-quest/api-go/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	listingController := controllers.NewListingController(db)
	utilController := controllers.NewUtilController(config.NewOlaMapsClient())
	validationController := controllers.NewValidationController(db)

	auth := middleware.AuthMiddleware(db)

	// Auth routes
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", authController.Signup)
		authGroup.POST("/login", authController.Login)
		authGroup.POST("/logout", authController.Logout)
		authGroup.GET("/google", authController.GoogleLogin)
		authGroup.GET("/google/callback", authController.GoogleCallback)
		authGroup.GET("/me", auth, authController.GetMe)
	}

	SetupListingRoutes(r, auth, listingController)
	SetupUtilRoutes(r, auth, utilController)
	SetupValidationRoutes(r, validationController)
}
