package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/supplyline/scm-console/internal/core/domain"
)

// MinRole gates a route on the role hierarchy: any caller whose role is at
// least min passes. Roles are totally ordered, so a single comparison covers
// every tier above the threshold.
func MinRole(min domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(domain.Role)
			if !ok || !role.AtLeast(min) {
				return domain.ErrPermissionDenied
			}
			return next(c)
		}
	}
}
