package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"workspace-service/internal/apperr"
	"workspace-service/internal/middleware"
	"workspace-service/internal/model"
	"workspace-service/pkg/logger"
	"workspace-service/prometheus"
)

// ListPosts returns the resolved tenant's posts, newest first.
func (h *Handler) ListPosts(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordPostOperation("list")

	tenantID, ok := middleware.TenantIDFrom(c)
	if !ok {
		return apperr.JSON(c, apperr.TenantRequired, "Tenant context required")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	posts, err := h.posts.ListByTenant(c.Request().Context(), tenantID)
	if err != nil {
		log.Error("Failed to list posts", zap.String("tenant_id", tenantID), zap.Error(err))
		return apperr.JSON(c, apperr.Internal, "Failed to load posts")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": posts})
}

// CreatePost stores a new post stamped with the resolved tenant.
func (h *Handler) CreatePost(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordPostOperation("create")

	tenantID, ok := middleware.TenantIDFrom(c)
	if !ok {
		return apperr.JSON(c, apperr.TenantRequired, "Tenant context required")
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}

	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse post creation request", zap.Error(err))
		return apperr.JSON(c, apperr.Validation, "Invalid request")
	}

	if req.Title == "" {
		return apperr.JSON(c, apperr.Validation, "title is required")
	}

	post := &model.Post{
		Title:       req.Title,
		Description: req.Description,
		TenantID:    tenantID,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.posts.Create(c.Request().Context(), post); err != nil {
		log.Error("Failed to create post", zap.String("tenant_id", tenantID), zap.Error(err))
		return apperr.JSON(c, apperr.Internal, "Failed to create post")
	}

	log.Info("Post created",
		zap.Uint("post_id", post.ID),
		zap.String("tenant_id", tenantID))

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": post})
}

// DeletePost removes a post scoped by both id and resolved tenant. A
// post that exists under another tenant reports "Not found" rather than
// "Forbidden" so existence never leaks across tenants.
func (h *Handler) DeletePost(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordPostOperation("delete")

	tenantID, ok := middleware.TenantIDFrom(c)
	if !ok {
		return apperr.JSON(c, apperr.TenantRequired, "Tenant context required")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return apperr.JSON(c, apperr.NotFound, "Not found")
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	removed, err := h.posts.DeleteScoped(c.Request().Context(), tenantID, uint(id))
	if err != nil {
		log.Error("Failed to delete post",
			zap.Uint64("post_id", id),
			zap.String("tenant_id", tenantID),
			zap.Error(err))
		return apperr.JSON(c, apperr.Internal, "Failed to delete post")
	}

	if !removed {
		return apperr.JSON(c, apperr.NotFound, "Not found")
	}

	log.Info("Post deleted", zap.Uint64("post_id", id), zap.String("tenant_id", tenantID))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
