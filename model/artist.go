package model

import "time"

// Artist is the catalog-owning profile created when a user is promoted to
// creator. Exactly one artist row ever exists per promoted user; songs and
// albums reference it, the owning user points back at it via users.artist_id.
type Artist struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the artists table name for migration.
func (Artist) TableName() string { return "artists" }
