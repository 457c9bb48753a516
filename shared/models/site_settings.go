package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SiteSettings holds site-wide configuration. The table is used as a singleton.
type SiteSettings struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	SiteName         string          `db:"site_name" json:"siteName"`
	SiteDescription  *string         `db:"site_description" json:"siteDescription,omitempty"`
	ThemeConfig      json.RawMessage `db:"theme_config" json:"themeConfig,omitempty"`
	PermissionConfig json.RawMessage `db:"permission_config" json:"permissionConfig,omitempty"`
	FeaturesConfig   json.RawMessage `db:"features_config" json:"featuresConfig,omitempty"`
	SeoConfig        json.RawMessage `db:"seo_config" json:"seoConfig,omitempty"`
	CreatedAt        time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updatedAt"`
}

// SiteSettingsInput is the payload of create and update calls.
// Nil fields are left untouched by an update.
type SiteSettingsInput struct {
	SiteName         *string         `json:"siteName"`
	SiteDescription  *string         `json:"siteDescription"`
	ThemeConfig      json.RawMessage `json:"themeConfig"`
	PermissionConfig json.RawMessage `json:"permissionConfig"`
	FeaturesConfig   json.RawMessage `json:"featuresConfig"`
	SeoConfig        json.RawMessage `json:"seoConfig"`
}
