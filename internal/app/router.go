package app

import (
	"reach_edu_backend/docs"
	"reach_edu_backend/internal/middleware"
	"reach_edu_backend/internal/model"
	"reach_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(), middleware.ActivityMiddleware(repos.user))
	{
		a.registerFamilyRoutes(authGroup, c)
		a.registerVolunteerRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, repos)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/login", c.auth.Login)

		// 作业目录本身公开，报名/提交状态要登录后才可见
		public.GET("/assignments", c.assignment.List)
		public.GET("/assignments/:id", c.assignment.Get)
		public.GET("/weekly-tasks", c.assignment.WeeklyTasks)

		// 注册向导
		signup := public.Group("/signup")
		{
			signup.POST("", c.signup.Start)
			signup.POST("/:id/identifier", c.signup.SubmitIdentifier)
			signup.POST("/:id/verification", c.signup.SubmitVerification)
			signup.POST("/:id/password", c.signup.SubmitPassword)
			signup.POST("/:id/role", c.signup.ChooseRole)
			signup.POST("/:id/parent-details", c.signup.SubmitParentDetails)
			signup.POST("/:id/volunteer-details", c.signup.SubmitVolunteerDetails)
			signup.POST("/:id/back", c.signup.Back)
		}
	}
}

// registerFamilyRoutes 家长/学生端：提交、同步、社区、排行榜、辅导场次
func (a *App) registerFamilyRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/me", c.auth.Me)

	rg.GET("/assignments/:id/state", c.submission.State)
	rg.POST("/assignments/:id/files", c.submission.Upload)
	rg.DELETE("/assignments/:id/files/:fileId", c.submission.Remove)
	rg.PUT("/assignments/:id/registration", c.grade.SetRegistration)

	sync := rg.Group("/sync")
	{
		sync.POST("/mount", c.sync.Mount)
		sync.POST("/:viewId/focus", c.sync.Focus)
		sync.GET("/:viewId", c.sync.Snapshot)
		sync.DELETE("/:viewId", c.sync.Unmount)
	}

	community := rg.Group("/community")
	{
		community.GET("/posts", c.community.Posts)
		community.POST("/posts", c.community.CreatePost)
		community.GET("/posts/:postId/replies", c.community.Replies)
		community.POST("/posts/:postId/replies", c.community.CreateReply)
	}

	rg.GET("/leaderboard", c.leaderboard.Standings)
	rg.PUT("/leaderboard/opt-out", c.leaderboard.SetOptOut)

	rg.GET("/sessions", c.session.List)
	rg.GET("/sessions/stats", c.session.Stats)
}

// registerVolunteerRoutes 义工端：评分和评语
func (a *App) registerVolunteerRoutes(rg *gin.RouterGroup, c *controllers) {
	volunteer := rg.Group("/volunteer")
	volunteer.Use(middleware.RoleMiddleware(model.Volunteer))
	{
		volunteer.PUT("/assignments/:id/grade", c.grade.RecordGrade)
		volunteer.PUT("/assignments/:id/feedback", c.grade.RecordFeedback)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.ActivityMiddleware(repos.user), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/assignments", c.assignment.CreateCustom)
		admin.DELETE("/assignments/:id/data", c.assignment.ClearData)

		admin.POST("/sessions", c.session.Create)
		admin.PUT("/sessions/:id/status", c.session.UpdateStatus)
		admin.DELETE("/sessions/:id", c.session.Delete)
	}
}
