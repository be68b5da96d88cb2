package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cryptotrack/portfolio-api/internal/api/middleware"
	"github.com/cryptotrack/portfolio-api/internal/core/ports"
)

// ctxIdentity extracts the authenticated identity injected by the Auth
// middleware. An empty subject means the middleware did not run (or the
// route is wired wrong); fail closed with 401.
func ctxIdentity(c echo.Context) (ports.Identity, error) {
	sub, _ := c.Get(middleware.CtxUserID).(string)
	role, _ := c.Get(middleware.CtxRole).(string)
	if sub == "" || role == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Identity{Subject: sub, Role: role}, nil
}
