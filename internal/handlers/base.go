package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"karmafeed/internal/middleware"
	"karmafeed/internal/models"
	"karmafeed/internal/services"
	"karmafeed/internal/utils"

	"github.com/gin-gonic/gin"
)

// currentUser returns the acting user loaded by middleware.LoadUser, or nil.
func currentUser(c *gin.Context) *models.User {
	user, _ := middleware.CurrentUser(c)
	return user
}

func currentUserID(c *gin.Context) uint {
	if user := currentUser(c); user != nil {
		return user.ID
	}
	return 0
}

// RespondError maps service errors to HTTP statuses.
func RespondError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method, "route", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, ok := utils.ParseID(c.Param(name))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
	}
	return id, ok
}

func pageQuery(c *gin.Context) int {
	if page := utils.StringToInt(c.Query("page")); page > 0 {
		return page
	}
	return 1
}

func renderPost(p *models.Post) {
	p.ContentHTML = utils.RenderMarkdown(p.Content)
}

func renderComment(c *models.Comment) {
	c.ContentHTML = utils.RenderMarkdown(c.Content)
}

func renderTree(nodes []*services.CommentNode) {
	for _, node := range nodes {
		renderComment(&node.Comment)
		renderTree(node.Replies)
	}
}
