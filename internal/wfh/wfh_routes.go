package wfh

import (
	"go-attendance/internal/domain"
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	authMiddleware gin.HandlerFunc,
) {
	approvals := r.Group("/wfh-approvals")
	approvals.Use(authMiddleware)
	{
		approvals.GET("/me",
			middleware.RequirePrincipal(domain.PrincipalEmployee),
			middleware.RBACAuthorize(rbacService, "wfh", "read_own"),
			handler.GetMine,
		)
		approvals.GET("",
			middleware.RBACAuthorize(rbacService, "wfh", "read_all"),
			handler.GetAll,
		)
		approvals.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "wfh", "approve"),
			handler.Approve,
		)
	}
}
