package routes

import (
	"github.com/gin-gonic/gin"

	"civicreport-be/auth"
	"civicreport-be/controllers"
	"civicreport-be/middlewares"
)

// IssueRoutes sets up the public issue routes. Browsing is open to
// everyone; submitting a report requires a signed-in user and is
// rate limited when Redis is configured.
func IssueRoutes(r *gin.Engine, ic *controllers.IssueController, provider *auth.Provider, limiter gin.HandlerFunc) {
	issue := r.Group("/api/issue")
	{
		issue.GET("", ic.GetAllIssues)
		issue.GET("/:id", ic.GetIssue)

		create := []gin.HandlerFunc{middlewares.RequireRole(provider, "")}
		if limiter != nil {
			create = append(create, limiter)
		}
		create = append(create, ic.CreateIssue)
		issue.POST("/create", create...)
	}
}
