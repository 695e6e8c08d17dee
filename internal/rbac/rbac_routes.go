package rbac

import (
	"go-attendance/internal/domain"
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service, authMiddleware gin.HandlerFunc) {
	group := r.Group("/rbac")
	group.Use(authMiddleware, middleware.RequirePrincipal(domain.PrincipalAdmin))
	{
		group.POST("/enforce", middleware.RBACAuthorize(service, "rbac", "read"), handler.Enforce)
		group.GET("/permissions", middleware.RBACAuthorize(service, "rbac", "read"), handler.ListPermissions)
	}
}
