package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-attendance/internal/domain"
	"go-attendance/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type envelope struct {
	Ok    bool           `json:"ok"`
	Data  any            `json:"data"`
	Error map[string]any `json:"error"`
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func employeeClaims(exp time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"principal_id":   "EMP001",
		"principal_type": "employee",
		"employee_id":    "EMP001",
		"name":           "John Doe",
		"exp":            exp.Unix(),
	}
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/attendances/sign-in", handlers...)
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAuthMiddleware(t *testing.T) {
	echo := func(c *gin.Context) {
		p, _ := PrincipalFromContext(c)
		c.JSON(http.StatusOK, gin.H{"ok": true, "data": p})
	}

	t.Run("bearer token sets principal", func(t *testing.T) {
		r := newRouter(AuthMiddleware(testSecret), echo)
		req := httptest.NewRequest(http.MethodPost, "/attendances/sign-in", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, employeeClaims(time.Now().Add(time.Hour))))
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w).Data.(map[string]any)
		assert.Equal(t, "employee", data["kind"])
		assert.Equal(t, "EMP001", data["employee_id"])
	})

	t.Run("cookie token", func(t *testing.T) {
		r := newRouter(AuthMiddleware(testSecret), echo)
		req := httptest.NewRequest(http.MethodPost, "/attendances/sign-in", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: signToken(t, employeeClaims(time.Now().Add(time.Hour)))})
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		r := newRouter(AuthMiddleware(testSecret), echo)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attendances/sign-in", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "not authenticated", decode(t, w).Error["message"])
	})

	t.Run("expired token", func(t *testing.T) {
		r := newRouter(AuthMiddleware(testSecret), echo)
		req := httptest.NewRequest(http.MethodPost, "/attendances/sign-in", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, employeeClaims(time.Now().Add(-time.Hour))))
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "token expired", decode(t, w).Error["message"])
	})

	t.Run("unknown principal type", func(t *testing.T) {
		claims := employeeClaims(time.Now().Add(time.Hour))
		claims["principal_type"] = "guest"
		r := newRouter(AuthMiddleware(testSecret), echo)
		req := httptest.NewRequest(http.MethodPost, "/attendances/sign-in", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, claims))
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func withPrincipal(p domain.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextPrincipal, p)
		c.Set(ContextPrincipalID, p.ID)
		c.Set(ContextPrincipalKind, string(p.Kind))
		c.Next()
	}
}

func TestRequirePrincipal(t *testing.T) {
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }
	admin := domain.Principal{Kind: domain.PrincipalAdmin, ID: "admin", Name: "Admin"}

	w := httptest.NewRecorder()
	newRouter(withPrincipal(admin), RequirePrincipal(domain.PrincipalEmployee), ok).
		ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attendances/sign-in", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	newRouter(withPrincipal(admin), RequirePrincipal(domain.PrincipalAdmin), ok).
		ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attendances/sign-in", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

type fakeRBAC struct {
	allowed bool
	err     error
	got     domain.EnforceRequest
}

func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, f.err
}

func TestRBACAuthorize(t *testing.T) {
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }
	emp := domain.Principal{Kind: domain.PrincipalEmployee, ID: "EMP001", EmployeeID: "EMP001"}

	t.Run("allowed", func(t *testing.T) {
		rbac := &fakeRBAC{allowed: true}
		w := httptest.NewRecorder()
		newRouter(withPrincipal(emp), RBACAuthorize(rbac, "attendance", "create"), ok).
			ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attendances/sign-in", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, domain.EnforceRequest{PrincipalID: "EMP001", Role: "employee", Resource: "attendance", Action: "create"}, rbac.got)
	})

	t.Run("denied", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(withPrincipal(emp), RBACAuthorize(&fakeRBAC{}, "employee", "delete"), ok).
			ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attendances/sign-in", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "employee:delete", decode(t, w).Error["details"].(map[string]any)["required"])
	})

	t.Run("enforcer error", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(withPrincipal(emp), RBACAuthorize(&fakeRBAC{err: errors.New("boom")}, "employee", "read"), ok).
			ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attendances/sign-in", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestIdempotency(t *testing.T) {
	emp := domain.Principal{Kind: domain.PrincipalEmployee, ID: "EMP001", EmployeeID: "EMP001"}
	cacheKey := "idemp:/attendances/sign-in:EMP001:key-1"
	lockKey := cacheKey + ":lock"

	t.Run("first request stores result and releases lock", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		result := gin.H{"message": "signed in"}
		payload, _ := json.Marshal(result)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", idempotencyLockTTL).SetVal(true)
		mock.ExpectSet(cacheKey, payload, IdempotencyCacheTTL).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		handler := func(c *gin.Context) {
			FinishIdempotent(c, rdb, result)
			c.Status(http.StatusCreated)
		}
		req := httptest.NewRequest(http.MethodPost, "/attendances/sign-in", nil)
		req.Header.Set(HeaderIdempotencyKey, "key-1")
		w := httptest.NewRecorder()

		newRouter(withPrincipal(emp), Idempotency(rdb), handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replays cached result", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).SetVal(`{"message":"signed in"}`)

		req := httptest.NewRequest(http.MethodPost, "/attendances/sign-in", nil)
		req.Header.Set(HeaderIdempotencyKey, "key-1")
		w := httptest.NewRecorder()

		newRouter(withPrincipal(emp), Idempotency(rdb), func(c *gin.Context) {
			t.Fatal("handler must not run on replay")
		}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent duplicate is rejected", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", idempotencyLockTTL).SetVal(false)

		req := httptest.NewRequest(http.MethodPost, "/attendances/sign-in", nil)
		req.Header.Set(HeaderIdempotencyKey, "key-1")
		w := httptest.NewRecorder()

		newRouter(withPrincipal(emp), Idempotency(rdb), func(c *gin.Context) {}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "PROCESSING", decode(t, w).Error["code"])
	})
}

func TestRateLimitByUser(t *testing.T) {
	emp := domain.Principal{Kind: domain.PrincipalEmployee, ID: "EMP001", EmployeeID: "EMP001"}
	r := newRouter(withPrincipal(emp), RateLimitByUser(0.001, 1), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attendances/sign-in", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attendances/sign-in", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRequestContextPropagation(t *testing.T) {
	var meta contextutil.Metadata
	r := newRouter(RequestID(), ContextLogger(zap.NewNop()), AuthMiddleware(testSecret), func(c *gin.Context) {
		meta = contextutil.ExtractMetadata(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/attendances/sign-in", nil)
	req.Header.Set(HeaderRequestID, "rid-42")
	req.Header.Set("Authorization", "Bearer "+signToken(t, employeeClaims(time.Now().Add(time.Hour))))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "rid-42", w.Header().Get(HeaderRequestID))
	assert.Equal(t, contextutil.Metadata{RequestID: "rid-42", PrincipalID: "EMP001", PrincipalKind: "employee"}, meta)
}

func TestRequestIDGeneratedWhenMissing(t *testing.T) {
	r := newRouter(RequestID(), func(c *gin.Context) {
		c.String(http.StatusOK, contextutil.GetRequestID(c.Request.Context()))
	})
	w := httptest.NewRecorder()

	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attendances/sign-in", nil))

	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
	assert.Equal(t, w.Header().Get(HeaderRequestID), w.Body.String())
}
