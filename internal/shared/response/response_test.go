package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewPaginationMeta(t *testing.T) {
	assert.Equal(t, PaginationMeta{Total: 21, TotalPages: 3, Page: 1, PageSize: 10}, NewPaginationMeta(21, 1, 10))
	assert.Equal(t, 0, NewPaginationMeta(5, 1, 0).TotalPages)
}

func TestErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, http.StatusConflict, "CONFIRMATION_REQUIRED", "Confirm office sign-in", map[string]bool{"confirmation_required": true})

	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "CONFIRMATION_REQUIRED", errObj["code"])
	assert.Equal(t, true, errObj["details"].(map[string]any)["confirmation_required"])
}

func TestPaginate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	items := []int{1, 2, 3, 4, 5}

	cases := []struct {
		name      string
		query     string
		wantItems []int
		wantMeta  PaginationMeta
	}{
		{"defaults", "", []int{1, 2}, PaginationMeta{Total: 5, TotalPages: 3, Page: 1, PageSize: 2}},
		{"second page", "?page=2&page_size=3", []int{4, 5}, PaginationMeta{Total: 5, TotalPages: 2, Page: 2, PageSize: 3}},
		{"past the end", "?page=9&page_size=2", []int{}, PaginationMeta{Total: 5, TotalPages: 3, Page: 9, PageSize: 2}},
		{"invalid values", "?page=-1&page_size=abc", []int{1, 2}, PaginationMeta{Total: 5, TotalPages: 3, Page: 1, PageSize: 2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/items"+tc.query, nil)

			got, meta := Paginate(c, items, 2)

			assert.Equal(t, tc.wantItems, got)
			assert.Equal(t, tc.wantMeta, meta)
		})
	}
}
