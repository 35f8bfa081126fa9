package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents a workspace member. Email uniqueness is scoped per
// tenant, so the same address may register independently in different
// tenants.
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null"`
	Email     string         `json:"email" gorm:"type:varchar(100);not null;uniqueIndex:idx_users_tenant_email"`
	Password  string         `json:"-" gorm:"type:varchar(255);not null"`
	TenantID  string         `json:"tenantId" gorm:"type:varchar(100);not null;uniqueIndex:idx_users_tenant_email;index"`
	Role      Role           `json:"role" gorm:"type:varchar(20);not null;default:'viewer'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
