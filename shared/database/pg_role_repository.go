package database

import (
	"context"
	"fmt"

	"community-server/shared/interfaces"
	"community-server/shared/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var _ interfaces.RoleRepository = (*pgRoleRepository)(nil)

// roleSeedLockKey - ключ pg_advisory_xact_lock для сидирования ролей.
const roleSeedLockKey int64 = 0x726f6c6573 // "roles"

const roleColumns = `id, name, display_name, description, priority, min_level, max_level, color, badge_config, created_at, updated_at`

type pgRoleRepository struct {
	db     interfaces.DBPool
	logger *zap.Logger
}

// NewPgRoleRepository creates a new PostgreSQL-backed RoleRepository.
func NewPgRoleRepository(db interfaces.DBPool, logger *zap.Logger) interfaces.RoleRepository {
	return &pgRoleRepository{
		db:     db,
		logger: logger.Named("PgRoleRepo"),
	}
}

func (r *pgRoleRepository) CountRoles(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM roles`
	var count int64
	r.logger.Debug("Executing query", zap.String("query", query))
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.logger.Error("Failed to count roles", zap.Error(err))
		return 0, fmt.Errorf("failed to count roles: %w", err)
	}
	return count, nil
}

func (r *pgRoleRepository) GetRoleByName(ctx context.Context, name models.RoleName) (*models.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE name = $1`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("name", name.String()))

	var role models.Role
	if err := pgxscan.Get(ctx, r.db, &role, query, name); err != nil {
		if pgxscan.NotFound(err) {
			r.logger.Debug("Role not found", zap.String("name", name.String()))
			return nil, models.ErrRoleNotFound
		}
		r.logger.Error("Failed to get role by name", zap.Error(err), zap.String("name", name.String()))
		return nil, fmt.Errorf("failed to get role by name: %w", err)
	}
	return &role, nil
}

func (r *pgRoleRepository) ListRoles(ctx context.Context) ([]models.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles ORDER BY priority DESC`
	r.logger.Debug("Executing query", zap.String("query", query))

	var roles []models.Role
	if err := pgxscan.Select(ctx, r.db, &roles, query); err != nil {
		r.logger.Error("Failed to list roles", zap.Error(err))
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// SeedRoles inserts the catalog on an empty table.
// Наличие хотя бы одной роли считается полным сидированием.
func (r *pgRoleRepository) SeedRoles(ctx context.Context, catalog []models.RoleDefinition) (bool, error) {
	inserted := false
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, roleSeedLockKey); err != nil {
			return fmt.Errorf("failed to acquire role seed lock: %w", err)
		}

		var count int64
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM roles`).Scan(&count); err != nil {
			return fmt.Errorf("failed to count roles: %w", err)
		}
		if count > 0 {
			r.logger.Debug("Roles already present, skipping seed", zap.Int64("count", count))
			return nil
		}

		batch := &pgx.Batch{}
		for _, def := range catalog {
			p := def.Permissions
			batch.Queue(`WITH new_role AS (
				INSERT INTO roles (name, display_name, description, priority, min_level)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id
			)
			INSERT INTO permissions (role_id, board_id, can_read, can_write, can_comment, can_delete, can_edit, can_pin, can_manage)
			SELECT id, NULL, $6, $7, $8, $9, $10, $11, $12 FROM new_role`,
				def.Name, def.DisplayName, def.Description, def.Priority(), def.MinLevel,
				flag(p.Read), flag(p.Write), flag(p.Comment), flag(p.Delete), flag(p.Edit), flag(p.Pin), flag(p.Manage),
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert role catalog: %w", err)
		}
		inserted = true
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to seed roles", zap.Error(err))
		return false, err
	}
	if inserted {
		r.logger.Info("Role catalog seeded", zap.Int("roles", len(catalog)))
	}
	return inserted, nil
}

func (r *pgRoleRepository) ListPermissions(ctx context.Context, roleID uuid.UUID) ([]models.Permission, error) {
	query := `SELECT id, role_id, board_id, can_read, can_write, can_comment, can_delete, can_edit, can_pin, can_manage, created_at, updated_at
		FROM permissions WHERE role_id = $1 ORDER BY board_id NULLS FIRST`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("roleID", roleID.String()))

	var perms []models.Permission
	if err := pgxscan.Select(ctx, r.db, &perms, query, roleID); err != nil {
		r.logger.Error("Failed to list permissions", zap.Error(err), zap.String("roleID", roleID.String()))
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return perms, nil
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
