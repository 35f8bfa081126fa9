package middleware

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"workspace-service/internal/apperr"
	"workspace-service/internal/model"
	"workspace-service/internal/repository"
	"workspace-service/internal/tenant"
	"workspace-service/pkg/logger"
	"workspace-service/prometheus"
)

const (
	tenantKey   = "tenant"
	tenantIDKey = "tenant_id"
)

// TenantHeader is the request header naming a tenant explicitly.
const TenantHeader = "x-tenant-id"

// ResolveTenant computes exactly one effective tenant for the request
// or rejects it. Candidate sources in priority order: route path param,
// x-tenant-id header, token claim. A caller authenticated for tenant A
// may never operate against tenant B, so a claim that disagrees with
// the proposed tenant is a terminal mismatch. Resolution never creates
// tenants; unknown tenants are a 404.
func ResolveTenant(directory *tenant.Directory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			claims, authenticated := ClaimsFrom(c)

			proposed := c.Param("tenantId")
			if proposed == "" {
				proposed = c.Request().Header.Get(TenantHeader)
			}
			if proposed == "" && authenticated {
				proposed = claims.TenantID
			}

			if proposed == "" {
				log.Warn("No tenant candidate on request")
				prometheus.RecordTenantError("", "tenant_required")
				return apperr.JSON(c, apperr.TenantRequired, "Tenant context required")
			}

			if authenticated && claims.TenantID != "" && proposed != claims.TenantID {
				log.Warn("Tenant mismatch",
					zap.String("proposed", proposed),
					zap.String("token_tenant", claims.TenantID))
				prometheus.RecordTenantError(proposed, "tenant_mismatch")
				return apperr.JSON(c, apperr.TenantMismatch, "Tenant mismatch")
			}

			resolved, err := directory.Lookup(c.Request().Context(), proposed)
			if err != nil {
				if repository.IsNotFound(err) {
					log.Warn("Tenant not found", zap.String("tenant_id", proposed))
					prometheus.RecordTenantError(proposed, "tenant_not_found")
					return apperr.JSON(c, apperr.TenantNotFound, "Tenant not found")
				}
				log.Error("Tenant resolution failed", zap.String("tenant_id", proposed), zap.Error(err))
				prometheus.RecordTenantError(proposed, "resolution_failed")
				return apperr.JSON(c, apperr.Internal, "Tenant resolution failed")
			}

			c.Set(tenantKey, resolved)
			c.Set(tenantIDKey, resolved.TenantID)

			return next(c)
		}
	}
}

// TenantFrom returns the tenant record attached by ResolveTenant.
func TenantFrom(c echo.Context) (*model.Tenant, bool) {
	t, ok := c.Get(tenantKey).(*model.Tenant)
	return t, ok
}

// TenantIDFrom returns the resolved tenant identifier.
func TenantIDFrom(c echo.Context) (string, bool) {
	id, ok := c.Get(tenantIDKey).(string)
	return id, ok
}
