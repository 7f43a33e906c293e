package router

import (
	"github.com/ahaven/authors-haven-api/internal/controller"
	"github.com/ahaven/authors-haven-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Setup 设置API路由
func Setup(r *gin.Engine) {
	api := r.Group("/api")

	// 用户相关路由
	setupUserRoutes(api)

	// 个人资料与关注相关路由
	setupProfileRoutes(api)

	// 文章相关路由
	setupArticleRoutes(api)

	// 评论相关路由
	setupCommentRoutes(api)

	// 标签与检索相关路由
	setupSearchRoutes(api)

	// 通知相关路由
	setupNotificationRoutes(api)

	// 管理员相关路由
	setupAdminRoutes(api)
}

// setupUserRoutes 设置用户认证相关路由
func setupUserRoutes(api *gin.RouterGroup) {
	userApi := controller.NewUserApi()

	// 公开路由
	userRoutes := api.Group("/users")
	{
		// 注册
		userRoutes.POST("/register", userApi.Register)
		// 登录
		userRoutes.POST("/login", userApi.Login)
		// 第三方登录
		userRoutes.POST("/social-login", userApi.SocialLogin)
		// 邮箱验证
		userRoutes.POST("/verify-email", userApi.VerifyEmail)
		// 忘记密码
		userRoutes.POST("/forgot-password", userApi.ForgotPassword)
		// 重置密码
		userRoutes.POST("/reset-password", userApi.ResetPassword)
	}

	// 需要登录的路由
	authRoutes := api.Group("/users", middleware.JWTAuth())
	{
		// 注销
		authRoutes.POST("/logout", userApi.Logout)
		// 修改密码
		authRoutes.PUT("/password", userApi.ChangePassword)
		// 查看自己的资料
		authRoutes.GET("/me", userApi.GetCurrentUser)
		// 更新自己的资料
		authRoutes.PUT("/me", userApi.UpdateProfile)
		// 更新通知偏好
		authRoutes.PUT("/me/notification-preferences", userApi.UpdateNotificationPreferences)
	}
}

// setupProfileRoutes 设置资料与关注相关路由
func setupProfileRoutes(api *gin.RouterGroup) {
	userApi := controller.NewUserApi()
	interactionApi := controller.NewInteractionApi()
	ratingApi := controller.NewRatingApi()

	profileRoutes := api.Group("/profiles")
	{
		// 查看用户资料
		profileRoutes.GET("/:username", middleware.OptionalAuth(), userApi.GetProfile)
		// 粉丝列表
		profileRoutes.GET("/:username/followers", interactionApi.Followers)
		// 关注列表
		profileRoutes.GET("/:username/followings", interactionApi.Followings)
		// 作者平均评分
		profileRoutes.GET("/:username/rating", ratingApi.GetAuthorRating)
		// 关注
		profileRoutes.POST("/:username/follow", middleware.JWTAuth(), interactionApi.Follow)
		// 取消关注
		profileRoutes.DELETE("/:username/follow", middleware.JWTAuth(), interactionApi.Unfollow)
	}
}

// setupArticleRoutes 设置文章相关路由
func setupArticleRoutes(api *gin.RouterGroup) {
	articleApi := controller.NewArticleApi()
	interactionApi := controller.NewInteractionApi()
	ratingApi := controller.NewRatingApi()
	statisticsApi := controller.NewStatisticsApi()
	reportApi := controller.NewReportApi()
	highlightApi := controller.NewHighlightApi()

	articleRoutes := api.Group("/articles")
	{
		// 文章列表
		articleRoutes.GET("", middleware.OptionalAuth(), articleApi.List)
		// 文章详情
		articleRoutes.GET("/:slug", middleware.OptionalAuth(), articleApi.Get)
		// 文章评分
		articleRoutes.GET("/:slug/rating", ratingApi.GetArticleRating)
		// 划线评论列表
		articleRoutes.GET("/:slug/highlights", highlightApi.List)
	}

	authRoutes := api.Group("/articles", middleware.JWTAuth())
	{
		// 创建文章
		authRoutes.POST("", articleApi.Create)
		// 更新文章
		authRoutes.PUT("/:slug", articleApi.Update)
		// 删除文章
		authRoutes.DELETE("/:slug", articleApi.Delete)
		// 收藏
		authRoutes.POST("/:slug/favorite", interactionApi.Favorite)
		// 取消收藏
		authRoutes.DELETE("/:slug/favorite", interactionApi.Unfavorite)
		// 添加书签
		authRoutes.POST("/:slug/bookmark", interactionApi.Bookmark)
		// 移除书签
		authRoutes.DELETE("/:slug/bookmark", interactionApi.Unbookmark)
		// 评分
		authRoutes.POST("/:slug/rating", ratingApi.Rate)
		// 举报
		authRoutes.POST("/:slug/report", reportApi.Create)
		// 划线评论
		authRoutes.POST("/:slug/highlights", highlightApi.Create)
		// 作者查看阅读统计
		authRoutes.GET("/:slug/statistics", statisticsApi.GetReadStatistics)
	}

	// 当前用户的文章与书签
	meRoutes := api.Group("", middleware.JWTAuth())
	{
		meRoutes.GET("/users/me/articles", articleApi.ListMine)
		meRoutes.GET("/users/me/bookmarks", interactionApi.ListBookmarks)
	}
}

// setupCommentRoutes 设置评论相关路由
func setupCommentRoutes(api *gin.RouterGroup) {
	commentApi := controller.NewCommentApi()
	highlightApi := controller.NewHighlightApi()

	// 文章下的评论
	api.GET("/articles/:slug/comments", middleware.OptionalAuth(), commentApi.List)
	api.POST("/articles/:slug/comments", middleware.JWTAuth(), commentApi.Create)

	commentRoutes := api.Group("/comments", middleware.JWTAuth())
	{
		// 修改评论
		commentRoutes.PUT("/:id", commentApi.Update)
		// 删除评论
		commentRoutes.DELETE("/:id", commentApi.Delete)
		// 点赞/取消点赞
		commentRoutes.POST("/:id/like", commentApi.ToggleLike)
	}

	// 删除划线评论
	api.DELETE("/highlights/:id", middleware.JWTAuth(), highlightApi.Delete)
}

// setupSearchRoutes 设置标签与检索相关路由
func setupSearchRoutes(api *gin.RouterGroup) {
	tagApi := controller.NewTagApi()
	searchApi := controller.NewSearchApi()

	tagRoutes := api.Group("/tags")
	{
		// 全部标签
		tagRoutes.GET("", tagApi.List)
		// 热门标签
		tagRoutes.GET("/trending", tagApi.Trending)
	}

	searchRoutes := api.Group("/search", middleware.OptionalAuth())
	{
		// 按作者检索
		searchRoutes.GET("/author", searchApi.ByAuthor)
		// 按标题检索
		searchRoutes.GET("/title", searchApi.ByTitle)
		// 按标签检索
		searchRoutes.GET("/tag", searchApi.ByTag)
	}
}

// setupNotificationRoutes 设置通知相关路由
func setupNotificationRoutes(api *gin.RouterGroup) {
	notificationApi := controller.NewNotificationApi()

	notificationRoutes := api.Group("/notifications", middleware.JWTAuth())
	{
		// 通知列表
		notificationRoutes.GET("", notificationApi.List)
		// 未读数
		notificationRoutes.GET("/unread-count", notificationApi.UnreadCount)
		// 标记单条已读
		notificationRoutes.PUT("/:id/read", notificationApi.MarkAsRead)
		// 标记全部已读
		notificationRoutes.PUT("/read-all", notificationApi.MarkAllAsRead)
	}
}

// setupAdminRoutes 设置管理员相关路由
func setupAdminRoutes(api *gin.RouterGroup) {
	userApi := controller.NewUserApi()
	reportApi := controller.NewReportApi()

	adminRoutes := api.Group("/admin", middleware.JWTAuth(), middleware.AdminAuth())
	{
		// 用户列表
		adminRoutes.GET("/users", userApi.ListUsers)
		// 删除用户
		adminRoutes.DELETE("/users/:id", userApi.DeleteUser)
		// 查看文章举报记录
		adminRoutes.GET("/articles/:slug/reports", reportApi.ListByArticle)
	}

	// 角色分配仅限超级管理员
	api.PUT("/admin/users/:id/role", middleware.JWTAuth(), middleware.SuperAdminAuth(), userApi.AssignRole)
}
