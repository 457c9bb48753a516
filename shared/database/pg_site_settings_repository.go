package database

import (
	"context"
	"fmt"

	"community-server/shared/interfaces"
	"community-server/shared/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var _ interfaces.SiteSettingsRepository = (*pgSiteSettingsRepository)(nil)

const siteSettingsColumns = `id, site_name, site_description, theme_config, permission_config, features_config, seo_config, created_at, updated_at`

type pgSiteSettingsRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgSiteSettingsRepository creates a new PostgreSQL-backed SiteSettingsRepository.
func NewPgSiteSettingsRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.SiteSettingsRepository {
	return &pgSiteSettingsRepository{
		db:     db,
		logger: logger.Named("PgSiteSettingsRepo"),
	}
}

func (r *pgSiteSettingsRepository) Get(ctx context.Context) (*models.SiteSettings, error) {
	query := `SELECT ` + siteSettingsColumns + ` FROM site_settings ORDER BY created_at ASC LIMIT 1`
	r.logger.Debug("Executing query", zap.String("query", query))

	var settings models.SiteSettings
	if err := pgxscan.Get(ctx, r.db, &settings, query); err != nil {
		if pgxscan.NotFound(err) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get site settings", zap.Error(err))
		return nil, fmt.Errorf("failed to get site settings: %w", err)
	}
	return &settings, nil
}

func (r *pgSiteSettingsRepository) Create(ctx context.Context, input models.SiteSettingsInput) (*models.SiteSettings, error) {
	query := `INSERT INTO site_settings (site_name, site_description, theme_config, permission_config, features_config, seo_config)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING ` + siteSettingsColumns
	r.logger.Debug("Executing query", zap.String("query", query))

	var settings models.SiteSettings
	err := pgxscan.Get(ctx, r.db, &settings, query,
		input.SiteName, input.SiteDescription,
		nullableJSON(input.ThemeConfig), nullableJSON(input.PermissionConfig),
		nullableJSON(input.FeaturesConfig), nullableJSON(input.SeoConfig),
	)
	if err != nil {
		r.logger.Error("Failed to create site settings", zap.Error(err))
		return nil, fmt.Errorf("failed to create site settings: %w", err)
	}
	r.logger.Info("Site settings created", zap.String("id", settings.ID.String()))
	return &settings, nil
}

// Update keeps the stored value of every nil input field.
func (r *pgSiteSettingsRepository) Update(ctx context.Context, id uuid.UUID, input models.SiteSettingsInput) (*models.SiteSettings, error) {
	query := `UPDATE site_settings SET
			site_name = COALESCE($2, site_name),
			site_description = COALESCE($3, site_description),
			theme_config = COALESCE($4, theme_config),
			permission_config = COALESCE($5, permission_config),
			features_config = COALESCE($6, features_config),
			seo_config = COALESCE($7, seo_config),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + siteSettingsColumns
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("id", id.String()))

	var settings models.SiteSettings
	err := pgxscan.Get(ctx, r.db, &settings, query, id,
		input.SiteName, input.SiteDescription,
		nullableJSON(input.ThemeConfig), nullableJSON(input.PermissionConfig),
		nullableJSON(input.FeaturesConfig), nullableJSON(input.SeoConfig),
	)
	if err != nil {
		if pgxscan.NotFound(err) {
			r.logger.Warn("Site settings not found for update", zap.String("id", id.String()))
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to update site settings", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("failed to update site settings: %w", err)
	}
	return &settings, nil
}

// nullableJSON sends an empty payload as SQL NULL.
func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
