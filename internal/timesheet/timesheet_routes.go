package timesheet

import (
	"go-attendance/internal/domain"
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, authMiddleware gin.HandlerFunc) {
	timesheets := r.Group("/timesheets")
	timesheets.Use(authMiddleware)
	{
		own := timesheets.Group("", middleware.RequirePrincipal(domain.PrincipalEmployee))
		own.POST("", middleware.RateLimitByUser(1, 5), middleware.RBACAuthorize(rbacService, "timesheet", "create"), handler.Submit)
		own.GET("/me", middleware.RBACAuthorize(rbacService, "timesheet", "read_own"), handler.GetMine)
		own.GET("/today", middleware.RBACAuthorize(rbacService, "timesheet", "read_own"), handler.GetToday)

		timesheets.GET("", middleware.RBACAuthorize(rbacService, "timesheet", "read_all"), handler.GetAll)
		timesheets.GET("/export", middleware.RBACAuthorize(rbacService, "timesheet", "export"), handler.Export)
	}
}
