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

// AdminController exposes the triage operations behind the admin guard
type AdminController struct {
	Store *store.IssueStore
}

// UpdateIssue applies a partial triage update to an issue
func (ac *AdminController) UpdateIssue(c *gin.Context) {
	var input struct {
		Title       *string `json:"title,omitempty"`
		Description *string `json:"description,omitempty"`
		Category    *string `json:"category,omitempty"`
		Status      *string `json:"status,omitempty"`
		Location    *string `json:"location,omitempty"`
		AssignedTo  *string `json:"assignedTo,omitempty"`
		ImageURL    *string `json:"imageUrl,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := store.IssueUpdate{
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		ImageURL:    input.ImageURL,
	}

	if input.Category != nil {
		if !models.ValidCategory(*input.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}
		category := models.IssueCategory(*input.Category)
		update.Category = &category
	}
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		status := models.IssueStatus(*input.Status)
		update.Status = &status
	}
	if input.AssignedTo != nil {
		if !models.ValidDepartment(*input.AssignedTo) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department"})
			return
		}
		dept := models.Department(*input.AssignedTo)
		update.AssignedTo = &dept
	}

	issue, err := ac.Store.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		}
		return
	}

	c.JSON(http.StatusOK, issue)
}

// DeleteIssue removes an issue from the collection
func (ac *AdminController) DeleteIssue(c *gin.Context) {
	err := ac.Store.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete issue"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Issue deleted successfully"})
}

// AddNote appends an internal note to an issue, attributed to the acting
// admin
func (ac *AdminController) AddNote(c *gin.Context) {
	var input struct {
		Content string `json:"content" binding:"required,max=1000"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	author := ""
	if session, ok := middlewares.SessionFromContext(c).(auth.Authenticated); ok {
		author = session.Email
	}

	note, err := ac.Store.AddNote(c.Request.Context(), c.Param("id"), input.Content, author)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add note"})
		}
		return
	}

	c.JSON(http.StatusCreated, note)
}

// GetAnalytics returns the dashboard counters: totals, open issues, and
// breakdowns by status and category, plus the most recent reports
func (ac *AdminController) GetAnalytics(c *gin.Context) {
	issues := ac.Store.List()

	byStatus := map[models.IssueStatus]int{}
	byCategory := map[models.IssueCategory]int{}
	for _, issue := range issues {
		byStatus[issue.Status]++
		byCategory[issue.Category]++
	}

	recent := query.Apply(issues, query.Filter{}, query.Sort{
		Field:     "reportedDate",
		Direction: query.Descending,
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"totalIssues": len(issues),
		"openIssues":  byStatus[models.Pending] + byStatus[models.InProgress],
		"byStatus":    byStatus,
		"byCategory":  byCategory,
		"recent":      recent,
	})
}
