// Package tenant implements the tenant directory: lookup of existing
// workspaces and lazy, seed-themed creation on first reference.
package tenant

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"workspace-service/internal/model"
	"workspace-service/internal/repository"
)

// SettingsPatch carries the mutable tenant fields for an admin update.
// Nil fields are left untouched.
type SettingsPatch struct {
	Name     *string         `json:"name,omitempty"`
	Theme    *model.Theme    `json:"theme,omitempty"`
	Features *model.Features `json:"features,omitempty"`
}

// Directory resolves tenant identifiers to tenant records.
type Directory struct {
	store repository.TenantStore
	seeds map[string]Seed
	log   *zap.Logger
}

// NewDirectory creates a directory over the given store with an
// injected seed table.
func NewDirectory(store repository.TenantStore, seeds map[string]Seed, log *zap.Logger) *Directory {
	if log == nil {
		log = zap.NewNop()
	}
	return &Directory{store: store, seeds: seeds, log: log}
}

// Lookup returns the tenant for tenantID without creating it. Resolution
// middleware uses this; only the register/login flow creates tenants.
func (d *Directory) Lookup(ctx context.Context, tenantID string) (*model.Tenant, error) {
	return d.store.FindByTenantID(ctx, tenantID)
}

// Ensure returns the tenant for tenantID, creating it from the seed
// table on first contact. Two concurrent first contacts for the same
// unseen tenantID serialize on the tenant_id unique constraint: the
// loser re-reads and returns the winner's record.
func (d *Directory) Ensure(ctx context.Context, tenantID string) (*model.Tenant, error) {
	existing, err := d.store.FindByTenantID(ctx, tenantID)
	if err == nil {
		return existing, nil
	}
	if !repository.IsNotFound(err) {
		return nil, fmt.Errorf("lookup tenant %q: %w", tenantID, err)
	}

	seed, ok := d.seeds[tenantID]
	if !ok {
		seed = d.seeds[DefaultSeedKey]
	}

	fresh := &model.Tenant{
		TenantID: tenantID,
		Slug:     tenantID,
		Name:     seed.Name,
		Theme: model.Theme{
			Colors: seed.Colors,
		},
		Features: model.DefaultFeatures(),
	}
	if fresh.Name == "" {
		fresh.Name = "Workspace"
	}

	if err := d.store.Create(ctx, fresh); err != nil {
		if repository.IsDuplicate(err) {
			// Lost the creation race; the winner's record is canonical.
			d.log.Debug("tenant already created concurrently", zap.String("tenant_id", tenantID))
			return d.store.FindByTenantID(ctx, tenantID)
		}
		return nil, fmt.Errorf("create tenant %q: %w", tenantID, err)
	}

	d.log.Info("Tenant created on first contact",
		zap.String("tenant_id", tenantID),
		zap.String("name", fresh.Name))
	return fresh, nil
}

// UpdateSettings replaces the mutable fields of an existing tenant and
// returns the updated record. Reachable only behind the admin role gate.
func (d *Directory) UpdateSettings(ctx context.Context, tenantID string, patch SettingsPatch) (*model.Tenant, error) {
	current, err := d.store.FindByTenantID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		current.Name = *patch.Name
	}
	if patch.Theme != nil {
		current.Theme = *patch.Theme
	}
	if patch.Features != nil {
		current.Features = *patch.Features
	}

	if err := d.store.Save(ctx, current); err != nil {
		return nil, fmt.Errorf("update tenant %q: %w", tenantID, err)
	}

	d.log.Info("Tenant settings updated", zap.String("tenant_id", tenantID))
	return current, nil
}
