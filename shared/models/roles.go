package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RoleName - типизированное имя роли из фиксированного каталога.
type RoleName string

const (
	RoleSystemAdmin RoleName = "system_admin"
	RoleAdmin       RoleName = "admin"
	RoleModerator   RoleName = "moderator"
	RoleMember      RoleName = "member"
	RoleNewbie      RoleName = "newbie"
)

// DefaultSignupRole назначается каждому новому аккаунту.
const DefaultSignupRole = RoleNewbie

var rolePriorities = map[RoleName]int{
	RoleSystemAdmin: 100,
	RoleAdmin:       90,
	RoleModerator:   50,
	RoleMember:      10,
	RoleNewbie:      1,
}

// Priority returns the numeric rank of the role; unknown roles rank 0.
func (r RoleName) Priority() int {
	return rolePriorities[r]
}

// Valid reports whether the role belongs to the catalog.
func (r RoleName) Valid() bool {
	_, ok := rolePriorities[r]
	return ok
}

// AtLeast reports whether r carries at least the privilege of min.
func (r RoleName) AtLeast(min RoleName) bool {
	return r.Valid() && r.Priority() >= min.Priority()
}

// Outranks reports whether r is strictly more privileged than other.
func (r RoleName) Outranks(other RoleName) bool {
	return r.Valid() && r.Priority() > other.Priority()
}

func (r RoleName) String() string {
	return string(r)
}

// IsSystemAdmin is the gate for every admin lifecycle operation.
// system_admin is the top of the catalog, so nothing else satisfies it.
func IsSystemAdmin(r RoleName) bool {
	return r.AtLeast(RoleSystemAdmin)
}

// Role is a row of the roles table.
type Role struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Name        RoleName        `db:"name" json:"name"`
	DisplayName string          `db:"display_name" json:"displayName"`
	Description *string         `db:"description" json:"description,omitempty"`
	Priority    int             `db:"priority" json:"priority"`
	MinLevel    int             `db:"min_level" json:"minLevel"`
	MaxLevel    *int            `db:"max_level" json:"maxLevel,omitempty"`
	Color       *string         `db:"color" json:"color,omitempty"`
	BadgeConfig json.RawMessage `db:"badge_config" json:"badgeConfig,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

// RoleDefinition describes a catalog entry seeded on an empty roles table.
type RoleDefinition struct {
	Name        RoleName
	DisplayName string
	Description string
	MinLevel    int
	Permissions PermissionSet
}

// Priority mirrors the typed priority so seeded rows and runtime checks agree.
func (d RoleDefinition) Priority() int {
	return d.Name.Priority()
}

// RoleCatalog returns the fixed role catalog, most privileged first.
func RoleCatalog() []RoleDefinition {
	return []RoleDefinition{
		{
			Name:        RoleSystemAdmin,
			DisplayName: "System Administrator",
			Description: "Top-level operator of the whole system",
			MinLevel:    1,
			Permissions: FullPermissions(),
		},
		{
			Name:        RoleAdmin,
			DisplayName: "Administrator",
			Description: "Runs the community",
			MinLevel:    1,
			Permissions: FullPermissions(),
		},
		{
			Name:        RoleModerator,
			DisplayName: "Moderator",
			Description: "Manages boards",
			MinLevel:    5,
			Permissions: PermissionSet{Read: true, Write: true, Comment: true, Delete: true, Edit: true, Pin: true},
		},
		{
			Name:        RoleMember,
			DisplayName: "Member",
			Description: "Regular member",
			MinLevel:    2,
			Permissions: PermissionSet{Read: true, Write: true, Comment: true},
		},
		{
			Name:        RoleNewbie,
			DisplayName: "Newbie",
			Description: "Newly registered member",
			MinLevel:    1,
			Permissions: PermissionSet{Read: true, Comment: true},
		},
	}
}

// AllRoles returns every catalog role name, most privileged first.
func AllRoles() []RoleName {
	catalog := RoleCatalog()
	names := make([]RoleName, 0, len(catalog))
	for _, def := range catalog {
		names = append(names, def.Name)
	}
	return names
}
