package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/supplyline/scm-console/internal/core/domain"
)

// ctxIdentity extracts the claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a missing role means
// the middleware did not run, so the request must not proceed.
func ctxIdentity(c echo.Context) (actorID string, role domain.Role, err error) {
	role, ok := c.Get("role").(domain.Role)
	if !ok {
		return "", 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	actorID, _ = c.Get("user_id").(string)
	return actorID, role, nil
}
