package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a community member together with the name of the role it holds.
type User struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	Email           string     `db:"email" json:"email"`
	Name            string     `db:"name" json:"name"`
	PasswordHash    string     `db:"password_hash" json:"-"` // Не отдаем хеш пароля
	RoleID          uuid.UUID  `db:"role_id" json:"roleId"`
	RoleName        RoleName   `db:"role_name" json:"role"` // LEFT JOIN roles
	Image           *string    `db:"image" json:"image,omitempty"`
	Bio             *string    `db:"bio" json:"bio,omitempty"`
	Level           int        `db:"level" json:"level"`
	Experience      int        `db:"experience" json:"experience"`
	PostsCount      int        `db:"posts_count" json:"postsCount"`
	CommentsCount   int        `db:"comments_count" json:"commentsCount"`
	IsActive        bool       `db:"is_active" json:"isActive"`
	IsEmailVerified bool       `db:"is_email_verified" json:"isEmailVerified"`
	EmailVerifiedAt *time.Time `db:"email_verified_at" json:"emailVerifiedAt,omitempty"`
	IsBanned        bool       `db:"is_banned" json:"isBanned"`
	BannedUntil     *time.Time `db:"banned_until" json:"bannedUntil,omitempty"`
	BannedReason    *string    `db:"banned_reason" json:"bannedReason,omitempty"`
	LastLoginAt     *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
	LastActiveAt    *time.Time `db:"last_active_at" json:"lastActiveAt,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updatedAt"`
}

// NewUser carries the fields required to insert a user row.
type NewUser struct {
	Email           string
	Name            string
	PasswordHash    string
	RoleID          uuid.UUID
	IsEmailVerified bool
}

// PublicUser is the user representation returned to API callers.
type PublicUser struct {
	ID              uuid.UUID  `json:"id"`
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	Role            RoleName   `json:"role"`
	Image           *string    `json:"image,omitempty"`
	Bio             *string    `json:"bio,omitempty"`
	Level           int        `json:"level"`
	Experience      int        `json:"experience"`
	IsEmailVerified bool       `json:"isEmailVerified"`
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// Public strips credential material from the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Role:            u.RoleName,
		Image:           u.Image,
		Bio:             u.Bio,
		Level:           u.Level,
		Experience:      u.Experience,
		IsEmailVerified: u.IsEmailVerified,
		LastLoginAt:     u.LastLoginAt,
		CreatedAt:       u.CreatedAt,
	}
}

// AdminSummary is the short form of the admin account shown to the system admin.
type AdminSummary struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsSuspended reports whether a ban is in effect at the given moment.
// A ban without an end date never lapses.
func (u *User) IsSuspended(now time.Time) bool {
	if !u.IsBanned {
		return false
	}
	if u.BannedUntil == nil {
		return true
	}
	return now.Before(*u.BannedUntil)
}
