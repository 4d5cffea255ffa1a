package controllers

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nest-quest/api-go/config"
	"github.com/nest-quest/api-go/models"
	"github.com/nest-quest/api-go/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

type AuthController struct {
	DB           *gorm.DB
	GoogleConfig *config.GoogleConfig
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		DB:           db,
		GoogleConfig: config.NewGoogleConfig(),
	}
}

func (ac *AuthController) Signup(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide email and password."})
		return
	}

	if len(input.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password must be at least 8 characters."})
		return
	}

	var existing models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		if existing.GoogleID != nil && existing.Password == nil {
			c.JSON(http.StatusConflict, gin.H{
				"message": "An account exists for this email via Google. Please use Google OAuth to sign in.",
			})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"message": "User with this email already exists."})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not hash password"})
		return
	}
	hashedPasswordStr := string(hashedPassword)

	user := models.User{
		Email:         input.Email,
		Name:          input.Name,
		Password:      &hashedPasswordStr,
		EmailVerified: false,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Signup failed"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not generate token"})
		return
	}
	utils.SetTokenCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user": gin.H{
			"id":            user.ID,
			"email":         user.Email,
			"name":          user.Name,
			"image":         user.Image,
			"emailVerified": user.EmailVerified,
		},
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide email and password."})
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password."})
		return
	}

	// Accounts created via Google have no password; the mismatch gets an
	// explanatory 403 instead of a generic credential failure.
	if user.GoogleID != nil && user.Password == nil {
		c.JSON(http.StatusForbidden, gin.H{
			"message": "This account was registered via Google. Please log in using Google OAuth.",
		})
		return
	}

	if user.Password == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password."})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not generate token"})
		return
	}
	utils.SetTokenCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user": gin.H{
			"id":            user.ID,
			"email":         user.Email,
			"name":          user.Name,
			"image":         user.Image,
			"emailVerified": user.EmailVerified,
		},
	})
}

// GoogleLogin redirects the browser to the Google consent page with a
// short-lived state cookie for CSRF protection.
func (ac *AuthController) GoogleLogin(c *gin.Context) {
	state := uuid.New().String()
	c.SetCookie("oauth_state", state, 300, "/", "", os.Getenv("GIN_MODE") == "release", true)
	c.Redirect(http.StatusTemporaryRedirect, ac.GoogleConfig.ConsentURL(state))
}

func (ac *AuthController) GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	savedState, err := c.Cookie("oauth_state")
	if state == "" || err != nil || state != savedState {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid state parameter"})
		return
	}

	token, err := ac.GoogleConfig.ExchangeCode(c.Request.Context(), c.Query("code"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Failed to exchange code for token"})
		return
	}

	var userInfo *config.GoogleUserInfo
	if idToken, ok := token.Extra("id_token").(string); ok && idToken != "" {
		userInfo, err = ac.GoogleConfig.VerifyIDToken(idToken)
	} else {
		userInfo, err = ac.GoogleConfig.GetUserInfo(token.AccessToken)
	}
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid Google token"})
		return
	}

	// Upsert by email so a returning password user gets their Google
	// identity attached rather than a duplicate account.
	var user models.User
	if err := ac.DB.Where("email = ?", userInfo.Email).First(&user).Error; err == nil {
		user.Name = userInfo.Name
		user.GoogleID = &userInfo.ID
		user.EmailVerified = userInfo.VerifiedEmail
		if user.Image == "" {
			user.Image = userInfo.Picture
		}
		if err := ac.DB.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Google OAuth failed"})
			return
		}
	} else {
		user = models.User{
			Email:         userInfo.Email,
			Name:          userInfo.Name,
			Image:         userInfo.Picture,
			GoogleID:      &userInfo.ID,
			EmailVerified: userInfo.VerifiedEmail,
		}
		if err := ac.DB.Create(&user).Error; err != nil {
			log.Printf("Error creating user from Google profile: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Google OAuth failed"})
			return
		}
	}

	sessionToken, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not generate token"})
		return
	}
	utils.SetTokenCookie(c, sessionToken)

	c.SetCookie("oauth_state", "", -1, "/", "", os.Getenv("GIN_MODE") == "release", true)

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "/"
	}
	c.Redirect(http.StatusTemporaryRedirect, frontendURL)
}

func (ac *AuthController) GetMe(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User fetched successfully",
		"user": gin.H{
			"id":            user.ID,
			"email":         user.Email,
			"name":          user.Name,
			"image":         user.Image,
			"phone":         user.Phone,
			"emailVerified": user.EmailVerified,
		},
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	utils.ClearTokenCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
