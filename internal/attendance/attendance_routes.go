package attendance

import (
	"go-attendance/internal/domain"
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, authMiddleware gin.HandlerFunc) {
	attendances := r.Group("/attendances")
	attendances.Use(authMiddleware)
	{
		own := attendances.Group("", middleware.RequirePrincipal(domain.PrincipalEmployee))
		own.POST("/sign-in",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			middleware.Idempotency(h.rdb),
			h.SignIn,
		)
		own.POST("/sign-out",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			middleware.Idempotency(h.rdb),
			h.SignOut,
		)
		own.GET("/me", middleware.RBACAuthorize(rbacService, "attendance", "read_own"), h.GetMine)
		own.GET("/today", middleware.RBACAuthorize(rbacService, "attendance", "read_own"), h.GetToday)

		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read_all"), h.GetAll)
		attendances.GET("/export", middleware.RBACAuthorize(rbacService, "attendance", "export"), h.Export)
	}

	dashboard := r.Group("/dashboard")
	dashboard.Use(authMiddleware)
	dashboard.GET("", middleware.RBACAuthorize(rbacService, "dashboard", "read"), h.Dashboard)
}
