// Package repository defines the store contracts the middleware and
// handlers depend on, plus their GORM implementations. All operations
// are single-document point lookups, filtered scans, or single-row
// writes; nothing here needs a multi-step transaction.
package repository

import (
	"context"

	"workspace-service/internal/model"
)

// Sentinel errors are GORM's: implementations return
// gorm.ErrRecordNotFound for absent rows and gorm.ErrDuplicatedKey for
// unique-constraint violations.

// TenantStore persists tenant records.
type TenantStore interface {
	FindByTenantID(ctx context.Context, tenantID string) (*model.Tenant, error)
	Create(ctx context.Context, tenant *model.Tenant) error
	Save(ctx context.Context, tenant *model.Tenant) error
}

// UserStore persists workspace members. Lookups are always scoped by
// tenant except FindByID, which serves the caller's own profile.
type UserStore interface {
	FindByEmail(ctx context.Context, tenantID, email string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateRole(ctx context.Context, tenantID, email string, role model.Role) (*model.User, error)
}

// PostStore persists posts. Every operation is filtered by tenant.
type PostStore interface {
	ListByTenant(ctx context.Context, tenantID string) ([]model.Post, error)
	Create(ctx context.Context, post *model.Post) error
	// DeleteScoped removes the post only when it belongs to tenantID,
	// reporting whether a row was removed. A post existing under another
	// tenant deletes nothing.
	DeleteScoped(ctx context.Context, tenantID string, id uint) (bool, error)
}
