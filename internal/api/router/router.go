package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shuttersense/backend/config"
	"shuttersense/backend/internal/api/handler"
	"shuttersense/backend/internal/api/middleware"
	"shuttersense/backend/pkg/jwt"
	"shuttersense/backend/pkg/redis"
)

// 请求体上限（ICS 导入走 multipart，留出余量）
const maxRequestBodyBytes = 10 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxRequestBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 活动模块
			events := authorized.Group("/events")
			{
				events.GET("", h.Event.List)
				events.POST("", h.Event.Create)
				events.POST("/import", h.Event.ImportICS)
				events.GET("/:guid", h.Event.Get)
				events.PUT("/:guid", h.Event.Update)
				events.DELETE("/:guid", h.Event.Delete)
				events.PUT("/:guid/performers", h.Event.ReplacePerformers)
				events.GET("/:guid/scores", h.Conflict.GetEventScores)
			}

			// 冲突检测模块
			conflicts := authorized.Group("/conflicts")
			{
				conflicts.GET("", h.Conflict.DetectConflicts)
				conflicts.POST("/resolve", h.Conflict.ResolveConflicts)
			}

			// 地点模块
			locations := authorized.Group("/locations")
			{
				locations.GET("", h.Location.List)
				locations.GET("/:guid", h.Location.Get)
				locations.POST("", h.Location.Create)
				locations.PUT("/:guid", h.Location.Update)
				locations.DELETE("/:guid", h.Location.Delete)
			}

			// 主办方模块
			organizers := authorized.Group("/organizers")
			{
				organizers.GET("", h.Organizer.List)
				organizers.GET("/:guid", h.Organizer.Get)
				organizers.POST("", h.Organizer.Create)
				organizers.PUT("/:guid", h.Organizer.Update)
				organizers.DELETE("/:guid", h.Organizer.Delete)
			}

			// 分类模块
			categories := authorized.Group("/categories")
			{
				categories.GET("", h.Category.ListCategories)
				categories.POST("", h.Category.CreateCategory)
				categories.PUT("/:guid", h.Category.UpdateCategory)
				categories.DELETE("/:guid", h.Category.DeleteCategory)
			}

			// 活动系列模块
			series := authorized.Group("/series")
			{
				series.GET("", h.Category.ListSeries)
				series.POST("", h.Category.CreateSeries)
				series.PUT("/:guid", h.Category.UpdateSeries)
				series.DELETE("/:guid", h.Category.DeleteSeries)
			}

			// 团队检测配置模块
			settings := authorized.Group("/settings")
			{
				settings.GET("", h.Settings.GetSettings)
				settings.PUT("", middleware.RoleAuth("admin"), h.Settings.UpdateSettings)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/conflicts", h.Export.ExportConflictReport)
			}
		}
	}

	return r
}
