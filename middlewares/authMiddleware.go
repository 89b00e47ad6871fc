package middlewares

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"civicreport-be/auth"
	"civicreport-be/models"
	authUtils "civicreport-be/utils"
)

// SessionKey is the gin context key holding the resolved auth.Session
const SessionKey = "session"

// SessionFromContext returns the session resolved by the middlewares for
// this request. Absent middleware means an anonymous visitor.
func SessionFromContext(c *gin.Context) auth.Session {
	if v, ok := c.Get(SessionKey); ok {
		if s, ok := v.(auth.Session); ok {
			return s
		}
	}
	return auth.Anonymous{}
}

// ResolveSession rebuilds the session from the auth token, if one is
// presented. It never rejects a request; route guards decide access.
func ResolveSession(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if cookie, err := c.Cookie("auth_token"); err == nil {
			tokenString = cookie
		}
		if authHeader := c.Request.Header.Get("Authorization"); authHeader != "" {
			// Extracting token from "Bearer <token>" format
			tokenString = authHeader
			if strings.HasPrefix(authHeader, "Bearer ") {
				tokenString = authHeader[7:]
			}
		}
		if tokenString == "" {
			c.Set(SessionKey, auth.Session(auth.Anonymous{}))
			c.Next()
			return
		}

		claims, err := authUtils.ParseToken(secret, tokenString)
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			c.Set(SessionKey, auth.Session(auth.Anonymous{}))
			c.Next()
			return
		}

		uid, _ := claims["user_id"].(string)
		email, _ := claims["email"].(string)
		role, _ := claims["role"].(string)
		if uid == "" {
			c.Set(SessionKey, auth.Session(auth.Anonymous{}))
			c.Next()
			return
		}

		c.Set(SessionKey, auth.Session(auth.Authenticated{
			UID:   uid,
			Email: email,
			Role:  models.Role(role),
		}))
		c.Next()
	}
}

// RequireRole gates a route group on the access guard's decision
func RequireRole(provider *auth.Provider, required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionFromContext(c)
		switch auth.Evaluate(session, provider.Ready(), required) {
		case auth.DecisionAllow:
			c.Next()
		case auth.DecisionPending:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Session check in progress"})
			c.Abort()
		case auth.DecisionSignIn:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization token provided"})
			c.Abort()
		default:
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to access this resource"})
			c.Abort()
		}
	}
}
