package handlers

import (
	"net/http"
	"time"

	"karmafeed/internal/services"
	"karmafeed/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	maxLeaderboardLimit = 50
	maxWindowHours      = 24 * 30
)

type LeaderboardHandler struct {
	board       *services.LeaderboardService
	windowHours int
	limit       int
}

func NewLeaderboardHandler(board *services.LeaderboardService, windowHours, limit int) *LeaderboardHandler {
	return &LeaderboardHandler{board: board, windowHours: windowHours, limit: limit}
}

// List 最近窗口内（默认 24 小时）积分最高的用户
func (h *LeaderboardHandler) List(c *gin.Context) {
	hours := h.windowHours
	if n := utils.StringToInt(c.Query("hours")); n > 0 {
		hours = min(n, maxWindowHours)
	}
	limit := h.limit
	if n := utils.StringToInt(c.Query("limit")); n > 0 {
		limit = min(n, maxLeaderboardLimit)
	}

	entries, err := h.board.TopKarma(c.Request.Context(), time.Now(), hours, limit)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
