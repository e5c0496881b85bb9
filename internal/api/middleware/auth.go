package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/skycast/weather-api/internal/core/token"
)

// Context keys under which the verified identity is stored. These are the
// only channel by which handlers learn who is calling.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Auth extracts the bearer token, verifies it, and injects the decoded
// identity into the request context. A missing credential is a 401; a
// presented-but-unverifiable one (bad signature, malformed, expired) is a
// 403, so the two cases stay distinguishable to clients.
func Auth(verifier *token.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			raw := bearerToken(authHeader)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization token is missing")
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "Authorization token is invalid")
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)

			return next(c)
		}
	}
}

// bearerToken returns the credential portion of an "Authorization: Bearer x"
// header, or "" when the header is absent or has no token part.
func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
