package handlers

import (
	"net/http"

	"karmafeed/internal/services"
	"karmafeed/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// List returns flat comments, oldest first; ?post= narrows to one post.
func (h *CommentHandler) List(c *gin.Context) {
	var postID uint
	if raw := c.Query("post"); raw != "" {
		id, ok := utils.ParseID(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post"})
			return
		}
		postID = id
	}

	comments, err := h.comments.List(c.Request.Context(), postID, pageQuery(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	for i := range comments {
		renderComment(&comments[i])
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) Detail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	node, err := h.comments.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	renderComment(&node.Comment)
	c.JSON(http.StatusOK, node)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.comments.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
