package model

import "time"

// Playlist is a named, ordered collection of song references. Songs are
// shared, never copied; a song deleted from the catalog simply stops
// resolving when the playlist is read.
type Playlist struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"size:80;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the playlists table name for migration.
func (Playlist) TableName() string { return "playlists" }

// PlaylistSong links a playlist to a song. Position records insertion order.
type PlaylistSong struct {
	PlaylistID int64     `json:"playlistId" gorm:"primaryKey"`
	SongID     int64     `json:"songId" gorm:"primaryKey"`
	Position   int       `json:"position" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName sets the playlist association table name for migration.
func (PlaylistSong) TableName() string { return "playlist_songs" }

// PlaylistWithSongs bundles a playlist with its resolved songs.
type PlaylistWithSongs struct {
	Playlist Playlist `json:"playlist"`
	Songs    []*Song  `json:"songs"`
}
