package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/nest-quest/api-go/models"
)

type contextKey string

const UserContextKey contextKey = "user"

// GetUser returns the authenticated user the auth middleware attached to
// the request context, or nil when the request is unauthenticated.
func GetUser(c *gin.Context) *models.User {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if dbUser, ok := user.(*models.User); ok {
		return dbUser
	}
	return nil
}
