package utils

import (
	"net/http"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

const (
	TokenCookieName = "token"
	tokenLifetime   = time.Hour * 24 * 7
)

// GenerateToken signs a session JWT for the given user.
func GenerateToken(userID uint, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(tokenLifetime).Unix(),
	})

	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// SetTokenCookie attaches the session cookie to the response.
func SetTokenCookie(c *gin.Context, token string) {
	secure := os.Getenv("GIN_MODE") == "release"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookieName, token, int(tokenLifetime.Seconds()), "/", "", secure, true)
}

// ClearTokenCookie expires the session cookie.
func ClearTokenCookie(c *gin.Context) {
	secure := os.Getenv("GIN_MODE") == "release"
	c.SetCookie(TokenCookieName, "", -1, "/", "", secure, true)
}
