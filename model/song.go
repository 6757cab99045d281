package model

import (
	"database/sql"
	"time"
)

// DefaultGenre is applied to songs uploaded without an explicit genre.
const DefaultGenre = "genre1"

// Song represents an uploaded song in the catalog. FileName is the object
// name in the audio store and stays null until a file is attached. Ratings
// are last-write-wins, not averaged across raters.
type Song struct {
	ID           int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	Title        string          `json:"title" gorm:"size:200;not null"`
	ReleaseDate  time.Time       `json:"releaseDate" gorm:"type:date"`
	Lyrics       string          `json:"lyrics" gorm:"type:text"`
	FileName     sql.NullString  `json:"fileName,omitempty" gorm:"size:500"`
	Singer       sql.NullString  `json:"singer,omitempty" gorm:"size:200"`
	Genre        string          `json:"genre" gorm:"size:80;not null;default:genre1"`
	SongRating   sql.NullFloat64 `json:"songRating,omitempty"`
	LyricsRating sql.NullFloat64 `json:"lyricsRating,omitempty"`
	ArtistID     sql.NullInt64   `json:"artistId,omitempty"`
	AlbumID      sql.NullInt64   `json:"albumId,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// TableName sets the songs table name for migration.
func (Song) TableName() string { return "songs" }
