package middleware

import (
	"errors"
	"fmt"
	"strings"

	autherrors "go-attendance/internal/auth/errors"
	"go-attendance/internal/domain"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextPrincipal     = "principal"
	ContextPrincipalID   = "principal_id"
	ContextPrincipalKind = "principal_kind"
	ContextEmployeeID    = "employee_id"
)

// AuthMiddleware accepts a bearer token or the access_token cookie.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWithAppError(c, autherrors.ErrNotAuthenticated)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				errObj = autherrors.ErrTokenExpired
			}
			abortWithAppError(c, errObj)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWithAppError(c, autherrors.ErrInvalidToken)
			return
		}

		principal, ok := principalFromClaims(claims)
		if !ok {
			abortWithAppError(c, autherrors.ErrInvalidToken)
			return
		}

		c.Set(ContextPrincipal, principal)
		c.Set(ContextPrincipalID, principal.ID)
		c.Set(ContextPrincipalKind, string(principal.Kind))
		if principal.IsEmployee() {
			c.Set(ContextEmployeeID, principal.EmployeeID)
		}
		withPrincipalContext(c, principal)

		c.Next()
	}
}

func principalFromClaims(claims jwt.MapClaims) (domain.Principal, bool) {
	id, _ := claims["principal_id"].(string)
	kind, _ := claims["principal_type"].(string)
	name, _ := claims["name"].(string)
	employeeID, _ := claims["employee_id"].(string)

	p := domain.Principal{
		Kind:       domain.PrincipalKind(kind),
		ID:         id,
		EmployeeID: employeeID,
		Name:       name,
	}
	if p.ID == "" || !p.Kind.Valid() {
		return domain.Principal{}, false
	}
	if p.IsEmployee() && p.EmployeeID == "" {
		return domain.Principal{}, false
	}
	return p, true
}

// RequirePrincipal rejects callers whose principal kind is not listed.
func RequirePrincipal(kinds ...domain.PrincipalKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFromContext(c)
		if !ok {
			abortWithAppError(c, autherrors.ErrNotAuthenticated)
			return
		}

		for _, k := range kinds {
			if p.Kind == k {
				c.Next()
				return
			}
		}

		abortWithAppError(c, autherrors.ErrForbidden)
	}
}

func PrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

func abortWithAppError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	c.Abort()
}
