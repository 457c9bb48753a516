package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Capability names one permission flag.
type Capability string

const (
	CapabilityRead    Capability = "read"
	CapabilityWrite   Capability = "write"
	CapabilityComment Capability = "comment"
	CapabilityDelete  Capability = "delete"
	CapabilityEdit    Capability = "edit"
	CapabilityPin     Capability = "pin"
	CapabilityManage  Capability = "manage"
)

// ParseCapability validates a capability name coming from a request.
func ParseCapability(s string) (Capability, error) {
	switch c := Capability(s); c {
	case CapabilityRead, CapabilityWrite, CapabilityComment, CapabilityDelete,
		CapabilityEdit, CapabilityPin, CapabilityManage:
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown capability %q", ErrValidation, s)
}

// PermissionSet is the group of capability flags granted to a role.
type PermissionSet struct {
	Read    bool `json:"canRead"`
	Write   bool `json:"canWrite"`
	Comment bool `json:"canComment"`
	Delete  bool `json:"canDelete"`
	Edit    bool `json:"canEdit"`
	Pin     bool `json:"canPin"`
	Manage  bool `json:"canManage"`
}

// FullPermissions grants every capability.
func FullPermissions() PermissionSet {
	return PermissionSet{Read: true, Write: true, Comment: true, Delete: true, Edit: true, Pin: true, Manage: true}
}

// Allows reports whether the set grants the capability.
func (p PermissionSet) Allows(c Capability) bool {
	switch c {
	case CapabilityRead:
		return p.Read
	case CapabilityWrite:
		return p.Write
	case CapabilityComment:
		return p.Comment
	case CapabilityDelete:
		return p.Delete
	case CapabilityEdit:
		return p.Edit
	case CapabilityPin:
		return p.Pin
	case CapabilityManage:
		return p.Manage
	default:
		return false
	}
}

// Permission is a row of the permissions table.
// A nil BoardID is the role's global grant; a board row overrides it for that board.
type Permission struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	RoleID     uuid.UUID  `db:"role_id" json:"roleId"`
	BoardID    *uuid.UUID `db:"board_id" json:"boardId,omitempty"`
	CanRead    int        `db:"can_read" json:"-"`
	CanWrite   int        `db:"can_write" json:"-"`
	CanComment int        `db:"can_comment" json:"-"`
	CanDelete  int        `db:"can_delete" json:"-"`
	CanEdit    int        `db:"can_edit" json:"-"`
	CanPin     int        `db:"can_pin" json:"-"`
	CanManage  int        `db:"can_manage" json:"-"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updatedAt"`
}

// Set converts the stored integer flags.
func (p *Permission) Set() PermissionSet {
	return PermissionSet{
		Read:    p.CanRead != 0,
		Write:   p.CanWrite != 0,
		Comment: p.CanComment != 0,
		Delete:  p.CanDelete != 0,
		Edit:    p.CanEdit != 0,
		Pin:     p.CanPin != 0,
		Manage:  p.CanManage != 0,
	}
}

// ResolvePermissions picks the board-scoped grant when present and falls back to the global one.
func ResolvePermissions(rows []Permission, boardID *uuid.UUID) (PermissionSet, bool) {
	var global *Permission
	for i := range rows {
		row := &rows[i]
		if row.BoardID == nil {
			if global == nil {
				global = row
			}
			continue
		}
		if boardID != nil && *row.BoardID == *boardID {
			return row.Set(), true
		}
	}
	if global != nil {
		return global.Set(), true
	}
	return PermissionSet{}, false
}
