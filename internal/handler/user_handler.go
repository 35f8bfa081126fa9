package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"workspace-service/internal/apperr"
	"workspace-service/internal/middleware"
	"workspace-service/internal/model"
	"workspace-service/internal/repository"
	"workspace-service/pkg/logger"
	"workspace-service/prometheus"
)

// UpdateRole changes a user's role, keyed by email within the caller's
// tenant. Targets in other tenants come back as "User not found" so the
// endpoint never confirms a user exists elsewhere. The new role takes
// effect on the target's next token issuance; already-issued tokens
// keep their embedded role until expiry.
func (h *Handler) UpdateRole(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return apperr.JSON(c, apperr.Unauthenticated, "No token provided")
	}

	var req struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}

	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse role update request", zap.Error(err))
		return apperr.JSON(c, apperr.Validation, "Invalid request")
	}

	if req.Email == "" {
		return apperr.JSON(c, apperr.Validation, "email is required")
	}

	role, ok := model.ParseRole(req.Role)
	if !ok {
		return apperr.JSON(c, apperr.Validation, "Invalid role")
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	user, err := h.users.UpdateRole(c.Request().Context(), claims.TenantID, req.Email, role)
	if err != nil {
		if repository.IsNotFound(err) {
			log.Warn("Role update target not found",
				zap.String("email", req.Email),
				zap.String("tenant_id", claims.TenantID))
			return apperr.JSON(c, apperr.NotFound, "User not found")
		}
		log.Error("Failed to update role", zap.String("email", req.Email), zap.Error(err))
		return apperr.JSON(c, apperr.Internal, "Failed to update role")
	}

	log.Info("User role updated",
		zap.String("email", user.Email),
		zap.String("tenant_id", user.TenantID),
		zap.String("role", user.Role.String()))

	return c.JSON(http.StatusOK, echo.Map{"user": user})
}
