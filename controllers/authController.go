package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"civicreport-be/auth"
	"civicreport-be/middlewares"
	authUtils "civicreport-be/utils"
)

// AuthController exposes the session provider over HTTP
type AuthController struct {
	Provider  *auth.Provider
	JWTSecret string
	Secure    bool
}

// RegisterUser handles user sign-up
func (a *AuthController) RegisterUser(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := a.Provider.SignUp(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User with this email already exists"})
			return
		}
		log.Println("Error registering user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	a.setAuthCookie(c, session)
	c.JSON(http.StatusCreated, gin.H{
		"uid":   session.UID,
		"email": session.Email,
	})
}

// LoginUser handles user sign-in
func (a *AuthController) LoginUser(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := a.Provider.SignIn(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		log.Println("Error logging in:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	a.setAuthCookie(c, session)
	c.JSON(http.StatusOK, gin.H{
		"uid":   session.UID,
		"email": session.Email,
		"role":  session.Role,
	})
}

// GetMe returns the authenticated user's identity
func (a *AuthController) GetMe(c *gin.Context) {
	session, ok := middlewares.SessionFromContext(c).(auth.Authenticated)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uid":   session.UID,
		"email": session.Email,
		"role":  session.Role,
	})
}

// LogoutUser clears the session and the auth_token cookie
func (a *AuthController) LogoutUser(c *gin.Context) {
	a.Provider.SignOut(c.Request.Context())

	c.SetCookie("auth_token", "", -1, "/", "", a.Secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (a *AuthController) setAuthCookie(c *gin.Context, session auth.Authenticated) {
	token, err := authUtils.GenerateToken(a.JWTSecret, session.UID, session.Email, session.Role)
	if err != nil {
		log.Println("Error generating token:", err)
		return
	}

	cookie := &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		MaxAge:   3600, // 1 hour
		Path:     "/",
		Secure:   a.Secure,
		HttpOnly: true, // still protect from JS access
		SameSite: http.SameSiteNoneMode,
	}
	http.SetCookie(c.Writer, cookie)
}
