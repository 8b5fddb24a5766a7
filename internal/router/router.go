package router

import (
	"log/slog"
	"net/http"

	"karmafeed/internal/config"
	"karmafeed/internal/handlers"
	"karmafeed/internal/metrics"
	"karmafeed/internal/middleware"
	"karmafeed/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const sessionName = "karmafeed_session"

// New builds the gin engine with sessions, request logging and all routes.
func New(cfg *config.Config, database *gorm.DB, logger *slog.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   14 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	accounts := services.NewAccountService(database, logger)
	comments := services.NewCommentService(database, logger)
	posts := services.NewPostService(database, comments, logger)
	likes := services.NewLikeService(database, logger)
	board := services.NewLeaderboardService(database)
	karma := services.NewKarmaService(database)

	r.Use(middleware.LoadUser(accounts))

	RegisterRoutes(r, Handlers{
		Auth:        handlers.NewAuthHandler(accounts),
		Post:        handlers.NewPostHandler(posts, comments),
		Comment:     handlers.NewCommentHandler(comments),
		Like:        handlers.NewLikeHandler(likes),
		Leaderboard: handlers.NewLeaderboardHandler(board, cfg.LeaderboardWindowHours, cfg.LeaderboardLimit),
		User:        handlers.NewUserHandler(accounts, karma, cfg.LeaderboardWindowHours),
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := database.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			logger.ErrorContext(c.Request.Context(), "health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

type Handlers struct {
	Auth        *handlers.AuthHandler
	Post        *handlers.PostHandler
	Comment     *handlers.CommentHandler
	Like        *handlers.LikeHandler
	Leaderboard *handlers.LeaderboardHandler
	User        *handlers.UserHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	api := r.Group("/api")

	// 公共路由 (Public Routes)
	api.GET("/posts", h.Post.List)              // 帖子列表
	api.GET("/posts/:id", h.Post.Detail)        // 帖子详情 + 评论树
	api.GET("/comments", h.Comment.List)        // 评论列表 (?post=)
	api.GET("/comments/:id", h.Comment.Detail)  // 单条评论
	api.GET("/leaderboard", h.Leaderboard.List) // 24 小时积分榜
	api.GET("/users/:id", h.User.Profile)       // 用户主页

	api.POST("/register", h.Auth.Register)   // 注册
	api.POST("/login", h.Auth.Login)         // 登录
	api.POST("/logout", h.Auth.Logout)       // 退出登录
	api.GET("/check-auth", h.Auth.CheckAuth) // 登录状态

	// 受保护路由 (Protected Routes)
	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/current-user", h.Auth.CurrentUser) // 当前用户
		authorized.GET("/karma", h.User.KarmaLogs)          // 积分明细

		authorized.POST("/posts", h.Post.Create)                     // 发布帖子
		authorized.PUT("/posts/:id", h.Post.Update)                  // 编辑帖子
		authorized.DELETE("/posts/:id", h.Post.Delete)               // 删除帖子
		authorized.POST("/posts/:id/like", h.Like.LikePost)          // 点赞/取消点赞帖子
		authorized.POST("/posts/:id/comments", h.Post.CreateComment) // 发表评论
		authorized.DELETE("/comments/:id", h.Comment.Delete)         // 删除评论
		authorized.POST("/comments/:id/like", h.Like.LikeComment)    // 点赞/取消点赞评论
	}
}
