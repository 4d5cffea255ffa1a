package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nest-quest/api-go/controllers"
)

func SetupValidationRoutes(r *gin.Engine, validationController *controllers.ValidationController) {
	validate := r.Group("/validate")
	{
		validate.GET("/email/:email", validationController.ValidateEmail)
	}
}
