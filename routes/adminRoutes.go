package routes

import (
	"github.com/gin-gonic/gin"

	"civicreport-be/auth"
	"civicreport-be/controllers"
	"civicreport-be/middlewares"
	"civicreport-be/models"
)

// AdminRoutes sets up the triage routes, all gated on the admin role
func AdminRoutes(r *gin.Engine, ac *controllers.AdminController, provider *auth.Provider) {
	admin := r.Group("/api/admin", middlewares.RequireRole(provider, models.RoleAdmin))
	{
		admin.PUT("/issue/:id", ac.UpdateIssue)
		admin.DELETE("/issue/:id", ac.DeleteIssue)
		admin.POST("/issue/:id/notes", ac.AddNote)
		admin.GET("/analytics", ac.GetAnalytics)
	}
}
