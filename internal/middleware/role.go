package middleware

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"workspace-service/internal/apperr"
	"workspace-service/internal/model"
	"workspace-service/pkg/logger"
	"workspace-service/prometheus"
)

// RequireRoles rejects the request unless the authenticated caller's
// role is in the allowed set. Comparison is exact against the canonical
// enumeration; there is no implied hierarchy, a route that should admit
// admins must list admin. Missing claims mean the gate was mounted
// before Auth, which is a wiring error, and the caller still only sees
// a 403.
func RequireRoles(allowed ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			claims, ok := ClaimsFrom(c)
			if !ok {
				log.Error("Role gate reached without authenticated identity, check middleware order")
				prometheus.RecordAuthError("missing_identity")
				return apperr.JSON(c, apperr.Forbidden, "Forbidden")
			}

			if !model.Role(claims.Role).In(allowed...) {
				log.Warn("Role not permitted",
					zap.String("role", claims.Role),
					zap.String("path", c.Path()))
				prometheus.RecordAuthError("role_forbidden")
				return apperr.JSON(c, apperr.Forbidden, "Forbidden")
			}

			return next(c)
		}
	}
}
