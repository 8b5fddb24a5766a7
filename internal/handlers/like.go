package handlers

import (
	"net/http"

	"karmafeed/internal/models"
	"karmafeed/internal/services"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likes *services.LikeService
}

func NewLikeHandler(likes *services.LikeService) *LikeHandler {
	return &LikeHandler{likes: likes}
}

// LikePost 点赞/取消点赞帖子
func (h *LikeHandler) LikePost(c *gin.Context) {
	h.toggle(c, models.TargetPost)
}

// LikeComment 点赞/取消点赞评论
func (h *LikeHandler) LikeComment(c *gin.Context) {
	h.toggle(c, models.TargetComment)
}

func (h *LikeHandler) toggle(c *gin.Context, kind models.TargetKind) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	liked, err := h.likes.Toggle(c.Request.Context(), currentUserID(c), models.Target{Kind: kind, ID: id})
	if err != nil {
		RespondError(c, err)
		return
	}

	noun := "Post"
	if kind == models.TargetComment {
		noun = "Comment"
	}
	if liked {
		c.JSON(http.StatusCreated, gin.H{"liked": true, "message": noun + " liked"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": false, "message": noun + " unliked"})
}
