package model

import (
	"database/sql"
	"time"
)

// Role values assigned to users. The vocabulary is closed: registration
// assigns RoleGeneral, creator promotion assigns RoleCreator and admin
// promotion assigns RoleAdmin. Creator status is also observable through the
// artist link, which survives a later admin promotion.
const (
	RoleGeneral = "general"
	RoleCreator = "creator"
	RoleAdmin   = "admin"
)

// User represents an account in the catalog.
type User struct {
	ID           int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string         `json:"username" gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string         `json:"-" gorm:"size:255;not null"` // Not exposed in API responses
	Name         sql.NullString `json:"name,omitempty" gorm:"size:100"`
	Role         string         `json:"role" gorm:"size:32;not null;default:general"`
	Flagged      bool           `json:"flagged" gorm:"not null;default:false"`
	Blacklisted  bool           `json:"blacklisted" gorm:"not null;default:false"`
	ArtistID     sql.NullInt64  `json:"artistId,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// TableName sets the users table name for migration.
func (User) TableName() string { return "users" }

// IsCreator reports whether the user has been granted an artist profile.
func (u *User) IsCreator() bool {
	return u.Role == RoleCreator && u.ArtistID.Valid
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
