package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pptq-absensi/config"
	"pptq-absensi/internal/api/handler"
	"pptq-absensi/internal/api/middleware"
	"pptq-absensi/internal/service"
	"pptq-absensi/pkg/jwt"
	"pptq-absensi/pkg/metrics"
	"pptq-absensi/pkg/redis"
)

// Setup builds the Gin engine. rdb may be nil.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit, cfg.Server.JSONLimit))
	r.Use(middleware.Metrics(m))

	r.GET("/health", h.Health.Check)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	admins := middleware.RoleAuth(service.RoleSuperadmin, service.RoleAdmin)
	superadmin := middleware.RoleAuth(service.RoleSuperadmin)
	loginLimit := middleware.RateLimit(rdb, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow)

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", loginLimit, h.Auth.Login)
			auth.POST("/login/pembina", loginLimit, h.Auth.LoginPembina)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		authorized.Use(middleware.IdleTimeout(rdb, cfg.Auth.IdleTimeout, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			attendance := authorized.Group("/attendance")
			{
				attendance.GET("/session", h.Attendance.GetSession)
				attendance.PUT("/session/activity", h.Attendance.SelectActivity)
				attendance.DELETE("/session/activity", h.Attendance.ClearActivity)
				attendance.POST("/session/lock", h.Attendance.Lock)
				attendance.POST("/mark", h.Attendance.Mark)
				attendance.POST("/reset", admins, h.Attendance.ResetDay)
			}

			students := authorized.Group("/students")
			{
				students.GET("", h.Roster.List)
				students.GET("/:id", h.Students.Get)
				students.GET("/:id/history", h.Roster.History)
				students.POST("", admins, h.Students.Create)
				students.PUT("/:id", admins, h.Students.Update)
				students.DELETE("/:id", admins, h.Students.Delete)
			}

			crud(authorized.Group("/pembina"), h.Supervisors, admins)
			crud(authorized.Group("/kelas"), h.Classes, admins)
			crud(authorized.Group("/kegiatan"), h.Activities, admins)
			crud(authorized.Group("/admins", superadmin), h.Admins, superadmin)

			records(authorized.Group("/pelanggaran"), h.Incidents, admins)
			kesehatan := authorized.Group("/kesehatan")
			records(kesehatan, h.HealthNotes, admins)
			kesehatan.PUT("/:id", admins, h.HealthNotes.Update)

			reports := authorized.Group("/reports")
			{
				reports.GET("/:category", h.Report.List)
				reports.GET("/:category/export", h.Report.Export)
				reports.POST("/:category/summary", h.Report.Summary)
			}
			authorized.POST("/ai/summary", h.Summary.Summarize)

			imports := authorized.Group("/import", admins)
			{
				imports.GET("/templates/:kind", h.Import.Template)
				imports.POST("/:kind", h.Import.Import)
			}

			store := authorized.Group("/store")
			{
				store.GET("", h.Store.Snapshot)
				store.POST("", admins, h.Store.Apply)
			}

			authorized.GET("/dashboard", h.Dashboard.Today)
			authorized.GET("/catalog", h.Dashboard.Catalog)
		}
	}

	return r
}

// crud registers reads for every role and writes guarded by write.
func crud[T any](g *gin.RouterGroup, h *handler.EntityHandler[T], write gin.HandlerFunc) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", write, h.Create)
	g.PUT("/:id", write, h.Update)
	g.DELETE("/:id", write, h.Delete)
}

// records registers append-only logs: any role may read and append,
// only admins may delete.
func records[T any](g *gin.RouterGroup, h *handler.EntityHandler[T], remove gin.HandlerFunc) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.DELETE("/:id", remove, h.Delete)
}
