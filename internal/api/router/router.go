package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adces/config"
	"adces/internal/api/handler"
	"adces/internal/api/middleware"
	"adces/internal/policy"
	"adces/pkg/jwt"
	"adces/pkg/redis"
)

// New builds the gin engine with every route group wired.
func New(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.CORS(cfg.Server.CORS.AllowOrigins),
		middleware.BodyLimit(10<<20),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	// login is the brute-force target; throttle it harder
	auth := api.Group("/auth")
	auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute, logger), h.Auth.Login)
	auth.POST("/refresh", middleware.RateLimit(rdb, 30, time.Minute, logger), h.Auth.Refresh)

	authed := api.Group("")
	authed.Use(middleware.JWTAuth(jwtMgr, rdb, logger))

	authed.POST("/auth/logout", h.Auth.Logout)
	authed.GET("/auth/me", h.Auth.Me)
	authed.POST("/auth/password", h.Auth.ChangePassword)

	users := authed.Group("/users", middleware.Permission(policy.ActionUserManage))
	{
		users.POST("", h.User.Create)
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Deactivate)
		users.POST("/:id/reset-password", h.User.ResetPassword)
		users.POST("/import", h.User.Import)
	}

	departments := authed.Group("/departments")
	{
		departments.GET("", h.Department.List)
		departments.GET("/:id", h.Department.Get)

		manage := middleware.Permission(policy.ActionDepartmentManage)
		departments.POST("", manage, h.Department.Create)
		departments.PUT("/:id", manage, h.Department.Update)
	}

	teachers := authed.Group("/teachers")
	{
		view := middleware.Permission(policy.ActionTeacherView)
		teachers.GET("", view, h.Teacher.List)
		teachers.GET("/:id", view, h.Teacher.Get)
		teachers.GET("/:id/schedules", view, h.Schedule.ListByTeacher)

		manage := middleware.Permission(policy.ActionTeacherManage)
		teachers.POST("", manage, h.Teacher.Create)
		teachers.PUT("/:id", manage, h.Teacher.Update)

		teachers.POST("/:id/mark-done",
			middleware.Permission(policy.ActionEvaluationMark), h.Evaluation.MarkTeacherDone)
	}

	assignments := authed.Group("/assignments")
	{
		manage := middleware.Permission(policy.ActionAssignmentManage)
		assignments.POST("/teachers", manage, h.Assignment.AssignTeacher)
		assignments.DELETE("/teachers/:id", manage, h.Assignment.UnassignTeacher)
		assignments.GET("/teachers", h.Assignment.ListTeacherAssignments)

		coordinators := middleware.Permission(policy.ActionCoordinatorManage)
		assignments.POST("/coordinators", coordinators, h.Assignment.AssignCoordinator)
		assignments.DELETE("/coordinators/:id", coordinators, h.Assignment.UnassignCoordinator)
		assignments.GET("/coordinators", coordinators, h.Assignment.ListCoordinators)

		assignments.PUT("/evaluators/:id/specialization", manage, h.Assignment.SetSpecialization)
		assignments.GET("/evaluators/:id/specialization", h.Assignment.GetSpecialization)
	}

	evaluations := authed.Group("/evaluations")
	{
		view := middleware.Permission(policy.ActionEvaluationView)
		evaluations.GET("", view, h.Evaluation.List)
		evaluations.GET("/:id", view, h.Evaluation.Get)

		create := middleware.Permission(policy.ActionEvaluationCreate)
		evaluations.POST("", create, h.Evaluation.Create)
		evaluations.PUT("/:id", create, h.Evaluation.Update)
		evaluations.POST("/:id/complete", create, h.Evaluation.Complete)
	}

	schedules := authed.Group("/schedules", middleware.Permission(policy.ActionScheduleManage))
	{
		schedules.POST("", h.Schedule.Create)
		schedules.GET("", h.Schedule.ListMine)
	}

	reports := authed.Group("/reports", middleware.Permission(policy.ActionReportView))
	{
		reports.GET("/dashboard", h.Report.Dashboard)
		reports.GET("/evaluations", h.Report.Rows)
	}

	authed.GET("/audit", middleware.Permission(policy.ActionAuditView), h.Report.AuditLog)

	export := authed.Group("/export")
	{
		view := middleware.Permission(policy.ActionReportView)
		export.GET("/evaluations.xlsx", view, h.Export.EvaluationsXLSX)
		export.GET("/evaluations/:id/pdf", view, h.Export.EvaluationPDF)
		export.GET("/schedule.ics",
			middleware.Permission(policy.ActionScheduleManage), h.Export.ScheduleICS)
	}

	return r
}
