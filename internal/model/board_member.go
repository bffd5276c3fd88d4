package model

import (
	"github.com/google/uuid"
)

// BoardMember grants a user access to a board with a role.
type BoardMember struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_board_members_pair"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_board_members_pair"`
	Role    string    `gorm:"not null;default:'member'"`

	Board Board `gorm:"foreignKey:BoardID"`
	User  User  `gorm:"foreignKey:UserID"`
}

// Membership roles. The board creator is always inserted as an admin.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)
