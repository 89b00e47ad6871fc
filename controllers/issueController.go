package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"civicreport-be/auth"
	"civicreport-be/middlewares"
	"civicreport-be/models"
	"civicreport-be/query"
	"civicreport-be/store"
)

// IssueController exposes the public issue surface: browsing, filtering
// and report submission
type IssueController struct {
	Store *store.IssueStore
}

// GetAllIssues handles retrieving all issues with filtering and sorting
func (ic *IssueController) GetAllIssues(c *gin.Context) {
	filter := query.Filter{
		Search:   c.Query("search"),
		Status:   c.DefaultQuery("status", query.All),
		Category: c.DefaultQuery("category", query.All),
		DateFrom: c.Query("from"),
		DateTo:   c.Query("to"),
	}

	if filter.Status != query.All && !models.ValidStatus(filter.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	if filter.Category != query.All && !models.ValidCategory(filter.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	sortSpec := query.Sort{
		Field:     c.Query("sort"),
		Direction: query.Ascending,
	}
	if c.DefaultQuery("direction", "asc") == "desc" {
		sortSpec.Direction = query.Descending
	}

	all := ic.Store.List()
	results := query.Apply(all, filter, sortSpec)

	c.JSON(http.StatusOK, gin.H{
		"issues":      results,
		"matching":    len(results),
		"totalIssues": len(all),
	})
}

// GetIssue retrieves an issue by its ID
func (ic *IssueController) GetIssue(c *gin.Context) {
	issue, err := ic.Store.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}
	c.JSON(http.StatusOK, issue)
}

// CreateIssue handles the creation of a new issue report
func (ic *IssueController) CreateIssue(c *gin.Context) {
	session, ok := middlewares.SessionFromContext(c).(auth.Authenticated)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Title       string  `json:"title" binding:"required,max=200"`
		Description string  `json:"description" binding:"required,max=1000"`
		Category    string  `json:"category" binding:"required"`
		Location    string  `json:"location" binding:"required,max=200"`
		ReportedBy  string  `json:"reportedBy" binding:"max=100"`
		ImageURL    *string `json:"imageUrl,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidCategory(input.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	reportedBy := input.ReportedBy
	if reportedBy == "" {
		reportedBy = session.Email
	}

	issue, err := ic.Store.Create(c.Request.Context(), models.Issue{
		Title:       input.Title,
		Description: input.Description,
		Category:    models.IssueCategory(input.Category),
		Location:    input.Location,
		ReportedBy:  reportedBy,
		ImageURL:    input.ImageURL,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	c.JSON(http.StatusCreated, issue)
}
