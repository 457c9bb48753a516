package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"community-server/shared/interfaces"
	"community-server/shared/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Compile-time check to ensure pgUserRepository implements UserRepository
var _ interfaces.UserRepository = (*pgUserRepository)(nil)

const pgUniqueViolation = "23505"

const userColumns = `u.id, u.email, u.name, u.password_hash, u.role_id, COALESCE(r.name, '') AS role_name,
	u.image, u.bio, u.level, u.experience, u.posts_count, u.comments_count,
	u.is_active, u.is_email_verified, u.email_verified_at, u.is_banned, u.banned_until, u.banned_reason,
	u.last_login_at, u.last_active_at, u.created_at, u.updated_at`

const selectUserQuery = `SELECT ` + userColumns + ` FROM users u LEFT JOIN roles r ON r.id = u.role_id`

const insertUserQuery = `WITH u AS (
	INSERT INTO users (email, name, password_hash, role_id, is_email_verified, email_verified_at)
	VALUES ($1, $2, $3, $4, $5, CASE WHEN $5 THEN NOW() END)
	RETURNING *
) SELECT ` + userColumns + ` FROM u LEFT JOIN roles r ON r.id = u.role_id`

type pgUserRepository struct {
	db     interfaces.DBPool
	logger *zap.Logger
}

// NewPgUserRepository creates a new PostgreSQL-backed UserRepository.
func NewPgUserRepository(db interfaces.DBPool, logger *zap.Logger) interfaces.UserRepository {
	return &pgUserRepository{
		db:     db,
		logger: logger.Named("PgUserRepo"),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.RoleID, &u.RoleName,
		&u.Image, &u.Bio, &u.Level, &u.Experience, &u.PostsCount, &u.CommentsCount,
		&u.IsActive, &u.IsEmailVerified, &u.EmailVerifiedAt, &u.IsBanned, &u.BannedUntil, &u.BannedReason,
		&u.LastLoginAt, &u.LastActiveAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// CreateUser inserts a new user into the database.
func (r *pgUserRepository) CreateUser(ctx context.Context, user *models.NewUser) (*models.User, error) {
	return r.insertUser(ctx, r.db, user)
}

func (r *pgUserRepository) insertUser(ctx context.Context, db interfaces.DBTX, user *models.NewUser) (*models.User, error) {
	logFields := []zap.Field{zap.String("email", user.Email), zap.String("roleID", user.RoleID.String())}
	r.logger.Debug("Executing query", append(logFields, zap.String("query", "insertUser"))...)

	created, err := scanUser(db.QueryRow(ctx, insertUserQuery, user.Email, user.Name, user.PasswordHash, user.RoleID, user.IsEmailVerified))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			r.logger.Warn("Attempted to create duplicate user by email", append(logFields, zap.String("constraint", pgErr.ConstraintName))...)
			return nil, models.ErrEmailAlreadyExists
		}
		r.logger.Error("Failed to create user in postgres", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to create user in postgres: %w", err)
	}
	r.logger.Info("User created successfully", zap.String("userID", created.ID.String()), zap.String("email", created.Email))
	return created, nil
}

// CreateSoleRoleHolder inserts the user only if the role is vacant.
// SELECT ... FOR UPDATE на строке роли сериализует конкурентные попытки.
func (r *pgUserRepository) CreateSoleRoleHolder(ctx context.Context, user *models.NewUser) (*models.User, error) {
	var created *models.User
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var roleID uuid.UUID
		if err := tx.QueryRow(ctx, `SELECT id FROM roles WHERE id = $1 FOR UPDATE`, user.RoleID).Scan(&roleID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.ErrRoleNotFound
			}
			return fmt.Errorf("failed to lock role row: %w", err)
		}

		var held bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE role_id = $1)`, roleID).Scan(&held); err != nil {
			return fmt.Errorf("failed to check role holders: %w", err)
		}
		if held {
			return models.ErrRoleAlreadyHeld
		}

		var err error
		created, err = r.insertUser(ctx, tx, user)
		return err
	})
	if err != nil {
		if !errors.Is(err, models.ErrRoleAlreadyHeld) && !errors.Is(err, models.ErrEmailAlreadyExists) {
			r.logger.Error("Failed to create sole role holder", zap.Error(err), zap.String("roleID", user.RoleID.String()))
		}
		return nil, err
	}
	return created, nil
}

// GetUserByEmail retrieves a user by their email.
func (r *pgUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := selectUserQuery + ` WHERE u.email = $1`
	r.logger.Debug("Executing query", zap.String("query", "GetUserByEmail"), zap.String("email", email))
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by email", zap.String("email", email))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by email from postgres", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email from postgres: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (r *pgUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := selectUserQuery + ` WHERE u.id = $1`
	r.logger.Debug("Executing query", zap.String("query", "GetUserByID"), zap.String("id", id.String()))
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by ID", zap.String("id", id.String()))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by id from postgres", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("failed to get user by id from postgres: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) GetFirstUserByRole(ctx context.Context, role models.RoleName) (*models.User, error) {
	query := selectUserQuery + ` WHERE r.name = $1 ORDER BY u.created_at ASC LIMIT 1`
	r.logger.Debug("Executing query", zap.String("query", "GetFirstUserByRole"), zap.String("role", role.String()))
	user, err := scanUser(r.db.QueryRow(ctx, query, role))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by role from postgres", zap.Error(err), zap.String("role", role.String()))
		return nil, fmt.Errorf("failed to get user by role: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) CountUsersByRole(ctx context.Context, role models.RoleName) (int64, error) {
	query := `SELECT COUNT(*) FROM users u JOIN roles r ON r.id = u.role_id WHERE r.name = $1`
	var count int64
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("role", role.String()))
	if err := r.db.QueryRow(ctx, query, role).Scan(&count); err != nil {
		r.logger.Error("Failed to count users by role", zap.Error(err), zap.String("role", role.String()))
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return count, nil
}

func (r *pgUserRepository) DeleteUsersByRole(ctx context.Context, roleID uuid.UUID) (int64, error) {
	query := `DELETE FROM users WHERE role_id = $1`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("roleID", roleID.String()))
	tag, err := r.db.Exec(ctx, query, roleID)
	if err != nil {
		r.logger.Error("Failed to delete users by role", zap.Error(err), zap.String("roleID", roleID.String()))
		return 0, fmt.Errorf("failed to delete users by role: %w", err)
	}
	r.logger.Info("Users deleted by role", zap.String("roleID", roleID.String()), zap.Int64("deleted", tag.RowsAffected()))
	return tag.RowsAffected(), nil
}

func (r *pgUserRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE users SET is_email_verified = TRUE, email_verified_at = $2, updated_at = NOW() WHERE id = $1`
	return r.execForUser(ctx, "MarkEmailVerified", query, id, at)
}

func (r *pgUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE users SET last_login_at = $2, last_active_at = $2 WHERE id = $1`
	return r.execForUser(ctx, "UpdateLastLogin", query, id, at)
}

func (r *pgUserRepository) SetBanStatus(ctx context.Context, id uuid.UUID, banned bool, reason *string, until *time.Time) error {
	query := `UPDATE users SET is_banned = $2, banned_reason = $3, banned_until = $4, updated_at = NOW() WHERE id = $1`
	if !banned {
		reason, until = nil, nil
	}
	return r.execForUser(ctx, "SetBanStatus", query, id, banned, reason, until)
}

// execForUser runs a single-row update and maps zero affected rows to ErrUserNotFound.
func (r *pgUserRepository) execForUser(ctx context.Context, op, query string, id uuid.UUID, args ...any) error {
	logFields := []zap.Field{zap.String("op", op), zap.String("userID", id.String())}
	r.logger.Debug("Executing query", append(logFields, zap.String("query", query))...)

	tag, err := r.db.Exec(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		r.logger.Error("Failed to update user", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("User not found for update", logFields...)
		return models.ErrUserNotFound
	}
	return nil
}
