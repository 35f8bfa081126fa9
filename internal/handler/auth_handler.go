package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"workspace-service/internal/apperr"
	"workspace-service/internal/middleware"
	"workspace-service/internal/model"
	"workspace-service/internal/repository"
	"workspace-service/pkg/logger"
	"workspace-service/prometheus"
)

// Register creates a user inside a tenant workspace, creating the
// tenant itself on first reference.
func (h *Handler) Register(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RegisterCounter.Inc()

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		TenantID string `json:"tenantId"`
		Role     string `json:"role,omitempty"`
	}

	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return apperr.JSON(c, apperr.Validation, "Invalid request")
	}

	if req.TenantID == "" {
		prometheus.RecordAuthError("missing_tenant")
		return apperr.JSON(c, apperr.Validation, "tenantId is required")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		log.Warn("Incomplete registration data", zap.String("email", req.Email))
		prometheus.RecordAuthError("incomplete_registration")
		return apperr.JSON(c, apperr.Validation, "name, email and password are required")
	}

	ctx := c.Request().Context()

	tenantRec, err := h.tenants.Ensure(ctx, req.TenantID)
	if err != nil {
		log.Error("Failed to ensure tenant", zap.String("tenant_id", req.TenantID), zap.Error(err))
		prometheus.RecordAuthError("tenant_ensure_failed")
		return apperr.JSON(c, apperr.Internal, "Registration failed")
	}

	// Email uniqueness is per tenant, not global.
	defer prometheus.TrackDBOperation("query")(time.Now())
	if _, err := h.users.FindByEmail(ctx, tenantRec.TenantID, req.Email); err == nil {
		log.Warn("User already exists", zap.String("email", req.Email), zap.String("tenant_id", tenantRec.TenantID))
		prometheus.RecordAuthError("email_already_exists")
		return apperr.JSON(c, apperr.Validation, "User already exists for this tenant")
	} else if !repository.IsNotFound(err) {
		log.Error("Failed to check existing user", zap.Error(err))
		return apperr.JSON(c, apperr.Internal, "Registration failed")
	}

	role := model.RoleViewer
	if h.cfg.Auth.AllowRoleOnRegister {
		if parsed, ok := model.ParseRole(req.Role); ok {
			role = parsed
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return apperr.JSON(c, apperr.Internal, "Registration failed")
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		TenantID: tenantRec.TenantID,
		Role:     role,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.users.Create(ctx, user); err != nil {
		if repository.IsDuplicate(err) {
			// Concurrent registration with the same email won the race.
			prometheus.RecordAuthError("email_already_exists")
			return apperr.JSON(c, apperr.Validation, "User already exists for this tenant")
		}
		log.Error("Failed to create user", zap.Error(err))
		prometheus.RecordAuthError("user_creation_failed")
		return apperr.JSON(c, apperr.Internal, "Registration failed")
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return apperr.JSON(c, apperr.Internal, "Registration failed")
	}
	prometheus.IncreaseActiveTokens()

	log.Info("User registered",
		zap.String("email", user.Email),
		zap.String("tenant_id", user.TenantID),
		zap.String("role", user.Role.String()))

	return c.JSON(http.StatusCreated, echo.Map{
		"user":   user,
		"tenant": tenantRec,
		"token":  token,
	})
}

// Login authenticates a user within a tenant and issues a bearer token
// carrying {userId, tenantId, role}.
func (h *Handler) Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		TenantID string `json:"tenantId"`
	}

	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return apperr.JSON(c, apperr.Validation, "Invalid request")
	}

	if req.TenantID == "" {
		prometheus.RecordAuthError("missing_tenant")
		return apperr.JSON(c, apperr.Validation, "tenantId is required")
	}

	ctx := c.Request().Context()

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.users.FindByEmail(ctx, req.TenantID, req.Email)
	if err != nil {
		if repository.IsNotFound(err) {
			// Same response as a bad password; never reveal which one it was.
			log.Warn("Login for unknown user", zap.String("email", req.Email), zap.String("tenant_id", req.TenantID))
			prometheus.RecordAuthError("user_not_found")
			return apperr.JSON(c, apperr.Validation, "Invalid credentials")
		}
		log.Error("Failed to look up user", zap.Error(err))
		return apperr.JSON(c, apperr.Internal, "Login failed")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email), zap.String("tenant_id", req.TenantID))
		prometheus.RecordAuthError("invalid_password")
		return apperr.JSON(c, apperr.Validation, "Invalid credentials")
	}

	tenantRec, err := h.tenants.Ensure(ctx, req.TenantID)
	if err != nil {
		log.Error("Failed to resolve tenant at login", zap.String("tenant_id", req.TenantID), zap.Error(err))
		return apperr.JSON(c, apperr.Internal, "Login failed")
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return apperr.JSON(c, apperr.Internal, "Login failed")
	}
	prometheus.IncreaseActiveTokens()

	log.Info("User logged in",
		zap.String("email", user.Email),
		zap.String("tenant_id", user.TenantID),
		zap.String("role", user.Role.String()))

	return c.JSON(http.StatusOK, echo.Map{
		"user":   user,
		"tenant": tenantRec,
		"token":  token,
	})
}

// Me returns the authenticated caller's current user record.
func (h *Handler) Me(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return apperr.JSON(c, apperr.Unauthenticated, "No token provided")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.users.FindByID(c.Request().Context(), claims.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperr.JSON(c, apperr.NotFound, "User not found")
		}
		log.Error("Failed to load user", zap.Uint("user_id", claims.UserID), zap.Error(err))
		return apperr.JSON(c, apperr.Internal, "Failed to load profile")
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user})
}
