package model

import (
	"database/sql"
	"time"
)

// Album represents an album in the catalog.
type Album struct {
	ID        int64         `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string        `json:"name" gorm:"size:200;not null"`
	Genre     string        `json:"genre" gorm:"size:200"`
	ArtistID  sql.NullInt64 `json:"artistId,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// TableName sets the albums table name for migration.
func (Album) TableName() string { return "albums" }
