package rbac

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-attendance/internal/domain"
	"go-attendance/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mockService struct{}

func (m *mockService) LoadPolicy(ctx context.Context) error { return nil }

func (m *mockService) Enforce(req domain.EnforceRequest) (bool, error) {
	return req.Role == "admin" && req.Resource == "employee" && req.Action == "read", nil
}

func (m *mockService) Permissions(role string) []domain.PermissionResponse {
	return []domain.PermissionResponse{{Role: role, Resource: "attendance", Action: "create"}}
}

func setupRouter() *gin.Engine {
	apperror.Init()
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHandler_Enforce(t *testing.T) {
	r := setupRouter()
	r.POST("/rbac/enforce", NewHandler(&mockService{}).Enforce)

	t.Run("allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce",
			strings.NewReader(`{"role":" admin ","resource":"employee","action":"read"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Data domain.EnforceResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Data.Allowed)
	})

	t.Run("missing action", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce",
			strings.NewReader(`{"role":"admin","resource":"employee"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Action is required")
	})
}

func TestHandler_ListPermissions(t *testing.T) {
	r := setupRouter()
	r.GET("/rbac/permissions", NewHandler(&mockService{}).ListPermissions)

	req := httptest.NewRequest(http.MethodGet, "/rbac/permissions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []domain.PermissionResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
}
