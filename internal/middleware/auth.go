package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"workspace-service/internal/apperr"
	"workspace-service/pkg/jwtutil"
	"workspace-service/pkg/logger"
	"workspace-service/prometheus"
)

const claimsKey = "claims"

// Auth validates the bearer token from the Authorization header and
// attaches the decoded claims to the request context. The 401 response
// is uniform: it never reveals whether the token was absent, malformed,
// expired, or badly signed beyond the missing-header case.
func Auth(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing authorization header")
				prometheus.RecordAuthError("missing_token")
				return apperr.JSON(c, apperr.Unauthenticated, "No token provided")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Warn("Invalid authorization header format")
				prometheus.RecordAuthError("invalid_auth_format")
				return apperr.JSON(c, apperr.Unauthenticated, "No token provided")
			}

			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return apperr.JSON(c, apperr.Unauthenticated, "Invalid token")
			}

			c.Set(claimsKey, claims)

			// Carry identity on the request logger for downstream stages.
			c.Set("logger", log.With(
				zap.Uint("user_id", claims.UserID),
				zap.String("tenant_id", claims.TenantID),
				zap.String("role", claims.Role),
			))

			return next(c)
		}
	}
}

// ClaimsFrom returns the decoded token claims attached by Auth.
func ClaimsFrom(c echo.Context) (*jwtutil.UserClaims, bool) {
	claims, ok := c.Get(claimsKey).(*jwtutil.UserClaims)
	return claims, ok
}
