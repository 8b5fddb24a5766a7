package handlers

import (
	"net/http"
	"time"

	"karmafeed/internal/services"
	"karmafeed/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

type UserHandler struct {
	accounts    *services.AccountService
	karma       *services.KarmaService
	windowHours int
}

func NewUserHandler(accounts *services.AccountService, karma *services.KarmaService, windowHours int) *UserHandler {
	return &UserHandler{accounts: accounts, karma: karma, windowHours: windowHours}
}

// Profile - 用户主页 /api/users/:id，包含窗口内积分和累计积分
func (h *UserHandler) Profile(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	user, err := h.accounts.Get(ctx, id)
	if err != nil {
		RespondError(c, err)
		return
	}

	var recent, total int
	since := time.Now().Add(-time.Duration(h.windowHours) * time.Hour)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		recent, err = h.karma.Total(gctx, user.ID, since)
		return err
	})
	g.Go(func() (err error) {
		total, err = h.karma.Total(gctx, user.ID, time.Time{})
		return err
	})
	if err := g.Wait(); err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"recent_karma": recent,
		"total_karma":  total,
	})
}

// KarmaLogs - 当前用户的积分明细
func (h *UserHandler) KarmaLogs(c *gin.Context) {
	logs, err := h.karma.History(c.Request.Context(), currentUserID(c), utils.StringToInt(c.Query("limit")))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
