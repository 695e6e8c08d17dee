package geofence

import (
	"net/http"

	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type CheckResponse struct {
	Within     bool   `json:"within"`
	OfficeName string `json:"office_name,omitempty"`
}

type Handler struct {
	evaluator *Evaluator
}

func NewHandler(evaluator *Evaluator) *Handler {
	return &Handler{evaluator: evaluator}
}

func (h *Handler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, h.evaluator.Offices(), nil)
}

// Check lets clients preview the geofence result before signing in.
func (h *Handler) Check(c *gin.Context) {
	lat := ParseCoordinate(c.Query("latitude"))
	lon := ParseCoordinate(c.Query("longitude"))
	within, name := h.evaluator.IsWithinAnyOffice(lat, lon)
	response.Success(c, http.StatusOK, CheckResponse{Within: within, OfficeName: name}, nil)
}

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	offices := r.Group("/offices")
	offices.Use(authMiddleware)
	{
		offices.GET("", h.List)
		offices.GET("/check", h.Check)
	}
}
