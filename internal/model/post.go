package model

import (
	"time"

	"gorm.io/gorm"
)

// Post is a short text entry owned by a tenant. Every read/write/delete
// is filtered by TenantID.
type Post struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"type:varchar(255);not null"`
	Description string         `json:"description" gorm:"type:text"`
	TenantID    string         `json:"tenantId" gorm:"type:varchar(100);not null;index:idx_posts_tenant_created"`
	CreatedAt   time.Time      `json:"created_at" gorm:"index:idx_posts_tenant_created,sort:desc"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
