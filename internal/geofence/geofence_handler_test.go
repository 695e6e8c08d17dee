package geofence

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewEvaluator([]Office{
		{Name: "HQ", Latitude: 12.9040293, Longitude: 77.5634288, RadiusMeters: 1000},
	}, zap.NewNop()))
	r := gin.New()
	r.GET("/offices", h.List)
	r.GET("/offices/check", h.Check)

	t.Run("list", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/offices", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"radius_meters":1000`)
	})

	t.Run("check inside", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/offices/check?latitude=12.9041&longitude=77.5635", nil))

		var body struct {
			Data CheckResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Data.Within)
		assert.Equal(t, "HQ", body.Data.OfficeName)
	})

	t.Run("check without coordinates", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/offices/check?latitude=abc", nil))

		var body struct {
			Data CheckResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Data.Within)
	})
}
