// Package handler implements the HTTP endpoints that run after the
// gate chain has established identity, tenant, and role.
package handler

import (
	"workspace-service/internal/repository"
	"workspace-service/internal/tenant"
	"workspace-service/pkg/config"
	"workspace-service/pkg/jwtutil"
)

// Handler carries the dependencies shared by all endpoints.
type Handler struct {
	users   repository.UserStore
	posts   repository.PostStore
	tenants *tenant.Directory
	tokens  *jwtutil.JWTUtil
	cfg     *config.Config
}

// New creates the endpoint handler set.
func New(
	users repository.UserStore,
	posts repository.PostStore,
	tenants *tenant.Directory,
	tokens *jwtutil.JWTUtil,
	cfg *config.Config,
) *Handler {
	return &Handler{
		users:   users,
		posts:   posts,
		tenants: tenants,
		tokens:  tokens,
		cfg:     cfg,
	}
}
