package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"workspace-service/internal/apperr"
	"workspace-service/internal/middleware"
	"workspace-service/internal/repository"
	"workspace-service/internal/tenant"
	"workspace-service/pkg/logger"
	"workspace-service/prometheus"
)

// GetSettings returns the resolved tenant's record, including theme and
// feature flags.
func (h *Handler) GetSettings(c echo.Context) error {
	prometheus.RecordTenantOperation("settings_read")

	tenantRec, ok := middleware.TenantFrom(c)
	if !ok {
		return apperr.JSON(c, apperr.TenantRequired, "Tenant context required")
	}

	return c.JSON(http.StatusOK, tenantRec)
}

// UpdateSettings patches the resolved tenant's mutable fields.
func (h *Handler) UpdateSettings(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordTenantOperation("settings_update")

	tenantID, ok := middleware.TenantIDFrom(c)
	if !ok {
		return apperr.JSON(c, apperr.TenantRequired, "Tenant context required")
	}

	var patch tenant.SettingsPatch
	if err := c.Bind(&patch); err != nil {
		log.Warn("Failed to parse settings update", zap.Error(err))
		return apperr.JSON(c, apperr.Validation, "Invalid request")
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	updated, err := h.tenants.UpdateSettings(c.Request().Context(), tenantID, patch)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperr.JSON(c, apperr.TenantNotFound, "Tenant not found")
		}
		log.Error("Failed to update tenant settings", zap.String("tenant_id", tenantID), zap.Error(err))
		return apperr.JSON(c, apperr.Internal, "Failed to update settings")
	}

	return c.JSON(http.StatusOK, updated)
}
