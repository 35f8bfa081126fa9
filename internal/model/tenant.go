package model

import (
	"time"

	"gorm.io/gorm"
)

// ThemeColors is the fixed palette a tenant can customize.
type ThemeColors struct {
	Background string `json:"background"`
	Surface    string `json:"surface"`
	Primary    string `json:"primary"`
	Text       string `json:"text"`
	Muted      string `json:"muted"`
	Accent     string `json:"accent"`
}

// Theme holds per-tenant branding served to the client.
type Theme struct {
	LogoURL string      `json:"logoUrl"`
	Colors  ThemeColors `json:"colors"`
}

// Features holds per-tenant feature flags.
type Features struct {
	Posts     bool `json:"posts"`
	Chat      bool `json:"chat"`
	Analytics bool `json:"analytics"`
}

// Tenant represents an isolated workspace. All user and post data is
// partitioned by TenantID.
type Tenant struct {
	ID        uint           `json:"-" gorm:"primaryKey"`
	TenantID  string         `json:"tenantId" gorm:"type:varchar(100);uniqueIndex;not null"`
	Slug      string         `json:"slug" gorm:"type:varchar(100)"`
	Name      string         `json:"name" gorm:"type:varchar(100)"`
	Theme     Theme          `json:"theme" gorm:"type:jsonb;serializer:json"`
	Features  Features       `json:"features" gorm:"type:jsonb;serializer:json"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// DefaultThemeColors returns the palette applied when a seed does not
// override a color.
func DefaultThemeColors() ThemeColors {
	return ThemeColors{
		Background: "#ffffff",
		Surface:    "#f5f5f5",
		Primary:    "#3b82f6",
		Text:       "#1f2937",
		Muted:      "#6b7280",
		Accent:     "#10b981",
	}
}

// DefaultFeatures returns the feature flags a new tenant starts with.
func DefaultFeatures() Features {
	return Features{Posts: true, Chat: false, Analytics: false}
}
