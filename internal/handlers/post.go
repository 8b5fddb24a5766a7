package handlers

import (
	"net/http"

	"karmafeed/internal/models"
	"karmafeed/internal/services"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	posts    *services.PostService
	comments *services.CommentService
}

func NewPostHandler(posts *services.PostService, comments *services.CommentService) *PostHandler {
	return &PostHandler{posts: posts, comments: comments}
}

type postRequest struct {
	Content string `json:"content" form:"content"`
}

type commentRequest struct {
	Content  string `json:"content" form:"content"`
	ParentID *uint  `json:"parent_id" form:"parent_id"`
}

type postDetail struct {
	*models.Post
	Comments []*services.CommentNode `json:"comments"`
}

// List 帖子列表，按发布时间倒序
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context(), currentUserID(c), pageQuery(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	for i := range posts {
		renderPost(&posts[i])
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post, err := h.posts.Create(c.Request.Context(), currentUserID(c), req.Content)
	if err != nil {
		RespondError(c, err)
		return
	}
	renderPost(post)
	c.JSON(http.StatusCreated, post)
}

// Detail returns the post with its nested comment tree.
func (h *PostHandler) Detail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	post, tree, err := h.posts.Get(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	renderPost(post)
	renderTree(tree)
	c.JSON(http.StatusOK, postDetail{Post: post, Comments: tree})
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req postRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post, err := h.posts.Update(c.Request.Context(), currentUserID(c), id, req.Content)
	if err != nil {
		RespondError(c, err)
		return
	}
	renderPost(post)
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.posts.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateComment 发表评论，parent_id 为空时是顶层评论
func (h *PostHandler) CreateComment(c *gin.Context) {
	postID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	comment, err := h.comments.Create(ctx, postID, currentUserID(c), req.Content, req.ParentID)
	if err != nil {
		RespondError(c, err)
		return
	}
	node, err := h.comments.Get(ctx, comment.ID)
	if err != nil {
		RespondError(c, err)
		return
	}
	renderComment(&node.Comment)
	c.JSON(http.StatusCreated, node)
}
