package router

import (
	"time"

	"lifelog/api"
	"lifelog/config"
	_ "lifelog/docs"
	"lifelog/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	loc := cfg.Location()
	api.InitSummaryCache(cfg)

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组
	v1 := r.Group("/api/v1")
	{
		// 认证相关路由（无需登录，但有限流）
		authHandler := api.NewAuthHandler(cfg)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.LoginRateLimit(5, time.Minute), authHandler.Login)
		}

		// 需要 JWT 认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			// 用户相关
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/auth/password", authHandler.ChangePassword)

			// 开销相关
			expenseHandler := api.NewExpenseHandler(loc)
			expenses := authorized.Group("/expenses")
			{
				expenses.POST("", expenseHandler.Create)
				expenses.GET("", expenseHandler.List)
				expenses.GET("/statistics", expenseHandler.GetStatistics)
			}
			authorized.GET("/categories", expenseHandler.GetCategories)

			// 饮食相关
			mealHandler := api.NewMealHandler(cfg)
			meals := authorized.Group("/meals")
			{
				meals.POST("", mealHandler.Create)
				meals.POST("/analyze", mealHandler.Analyze)
				meals.GET("", mealHandler.ListMeals)
				meals.GET("/today", mealHandler.Today)
			}

			// 训练相关
			workoutHandler := api.NewWorkoutHandler(loc)
			workouts := authorized.Group("/workouts")
			{
				workouts.POST("", workoutHandler.CreateSession)
				workouts.GET("/last", workoutHandler.LastSessions)
				workouts.GET("/recent", workoutHandler.Recent)
			}

			// 体重相关
			weightHandler := api.NewWeightHandler(loc)
			weights := authorized.Group("/weights")
			{
				weights.POST("", weightHandler.Create)
				weights.GET("", weightHandler.List)
				weights.GET("/latest", weightHandler.Latest)
			}

			// 习惯相关
			habitHandler := api.NewHabitHandler(loc)
			habits := authorized.Group("/habits")
			{
				habits.POST("", habitHandler.Create)
				habits.GET("/today", habitHandler.Today)
				habits.GET("/statistics", habitHandler.GetStatistics)
			}

			// 设置
			settingsHandler := api.NewSettingsHandler()
			authorized.GET("/settings", settingsHandler.Get)
			authorized.PUT("/settings", settingsHandler.Update)

			// 戒烟计时
			smokeFreeHandler := api.NewSmokeFreeHandler(loc)
			authorized.GET("/smoke-free", smokeFreeHandler.Status)

			// 今日摘要
			summaryHandler := api.NewSummaryHandler(loc)
			authorized.GET("/summary/today", summaryHandler.Today)

			// 导出相关
			exportHandler := api.NewExportHandler(loc)
			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/excel", exportHandler.ExportExcel)
			}

			// 导入
			importHandler := api.NewImportHandler(loc)
			authorized.POST("/import/excel", importHandler.ImportExcel)

			// 报告邮件
			reportHandler := api.NewReportHandler(cfg)
			authorized.POST("/report/email", reportHandler.SendDaily)
			authorized.POST("/report/test", reportHandler.SendTest)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
