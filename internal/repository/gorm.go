package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"workspace-service/internal/model"
)

// GormTenantStore is the Postgres-backed TenantStore.
type GormTenantStore struct {
	db *gorm.DB
}

func NewGormTenantStore(db *gorm.DB) *GormTenantStore {
	return &GormTenantStore{db: db}
}

func (s *GormTenantStore) FindByTenantID(ctx context.Context, tenantID string) (*model.Tenant, error) {
	var tenant model.Tenant
	if err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (s *GormTenantStore) Create(ctx context.Context, tenant *model.Tenant) error {
	return s.db.WithContext(ctx).Create(tenant).Error
}

func (s *GormTenantStore) Save(ctx context.Context, tenant *model.Tenant) error {
	return s.db.WithContext(ctx).Save(tenant).Error
}

// GormUserStore is the Postgres-backed UserStore.
type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) FindByEmail(ctx context.Context, tenantID, email string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("tenant_id = ? AND email = ?", tenantID, email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) Create(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *GormUserStore) UpdateRole(ctx context.Context, tenantID, email string, role model.Role) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("tenant_id = ? AND email = ?", tenantID, email).First(&user).Error; err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.db.WithContext(ctx).Model(&user).Update("role", role).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GormPostStore is the Postgres-backed PostStore.
type GormPostStore struct {
	db *gorm.DB
}

func NewGormPostStore(db *gorm.DB) *GormPostStore {
	return &GormPostStore{db: db}
}

func (s *GormPostStore) ListByTenant(ctx context.Context, tenantID string) ([]model.Post, error) {
	posts := make([]model.Post, 0)
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *GormPostStore) Create(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *GormPostStore) DeleteScoped(ctx context.Context, tenantID string, id uint) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&model.Post{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IsNotFound reports whether err is the store's absent-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a unique-constraint violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
