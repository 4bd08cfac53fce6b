package middleware // middleware provides reusable HTTP middleware for the API

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/utils"
)

// adminClaimsKey is the context key under which AdminAuth stores the
// decoded credential.
const adminClaimsKey = "admin_claims"

// AdminAuth returns an Echo middleware that validates a Bearer admin token
// and injects the decoded typed claims into the request context. Missing,
// malformed and expired tokens are all answered with a uniform 401. The
// provided secret must match the one used when issuing tokens.
func AdminAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			claims, err := utils.ParseAdminToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(adminClaimsKey, claims)
			return next(c)
		}
	}
}

// AdminClaims retrieves the decoded credential stored by AdminAuth. The
// boolean is false when the request did not pass through the guard.
func AdminClaims(c echo.Context) (utils.AdminClaims, bool) {
	claims, ok := c.Get(adminClaimsKey).(utils.AdminClaims)
	return claims, ok
}
