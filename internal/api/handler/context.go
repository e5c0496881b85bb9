package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skycast/weather-api/internal/api/middleware"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: both values must be
// non-empty (presence proves the middleware ran).
func ctxIdentity(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	role, _ = c.Get(middleware.CtxRole).(string)
	if userID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized access")
	}
	return userID, role, nil
}
