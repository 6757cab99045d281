package repository

import (
	"database/sql"
	"fmt"
	"time"

	"melodex/model"
)

// PlaylistRepository defines the interface for playlist data operations.
type PlaylistRepository interface {
	// CreatePlaylist writes the playlist row and its song links in one
	// transaction. Song ids are assumed to be pre-resolved by the caller.
	CreatePlaylist(name string, songIDs []int64) (int64, error)
	GetPlaylistByID(id int64) (*model.Playlist, error)
	GetAllPlaylists() ([]*model.Playlist, error)
	// GetPlaylistSongs returns the playlist's songs in insertion order.
	// Links pointing at deleted songs are skipped.
	GetPlaylistSongs(playlistID int64) ([]*model.Song, error)
}

// mysqlPlaylistRepository implements PlaylistRepository for MySQL.
type mysqlPlaylistRepository struct {
	db *sql.DB
}

// NewMySQLPlaylistRepository creates a new mysqlPlaylistRepository.
func NewMySQLPlaylistRepository(db *sql.DB) PlaylistRepository {
	return &mysqlPlaylistRepository{db: db}
}

// CreatePlaylist inserts the playlist and its links atomically.
func (r *mysqlPlaylistRepository) CreatePlaylist(name string, songIDs []int64) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin playlist transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.Exec("INSERT INTO playlists (name, created_at, updated_at) VALUES (?, ?, ?)", name, now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to create playlist %q: %w", name, err)
	}

	playlistID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for playlist: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO playlist_songs (playlist_id, song_id, position, created_at) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare playlist link statement: %w", err)
	}
	defer stmt.Close()

	for position, songID := range songIDs {
		if _, err := stmt.Exec(playlistID, songID, position, now); err != nil {
			return 0, fmt.Errorf("failed to link song %d to playlist %d: %w", songID, playlistID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit playlist transaction: %w", err)
	}
	return playlistID, nil
}

// GetPlaylistByID retrieves a playlist by its ID.
func (r *mysqlPlaylistRepository) GetPlaylistByID(id int64) (*model.Playlist, error) {
	query := "SELECT id, name, created_at, updated_at FROM playlists WHERE id = ?"
	playlist := &model.Playlist{}
	err := r.db.QueryRow(query, id).Scan(&playlist.ID, &playlist.Name, &playlist.CreatedAt, &playlist.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Playlist not found
		}
		return nil, fmt.Errorf("failed to scan playlist by ID %d: %w", id, err)
	}
	return playlist, nil
}

// GetAllPlaylists retrieves all playlists from the database.
func (r *mysqlPlaylistRepository) GetAllPlaylists() ([]*model.Playlist, error) {
	rows, err := r.db.Query("SELECT id, name, created_at, updated_at FROM playlists ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	playlists := make([]*model.Playlist, 0)
	for rows.Next() {
		playlist := &model.Playlist{}
		if err := rows.Scan(&playlist.ID, &playlist.Name, &playlist.CreatedAt, &playlist.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan playlist row: %w", err)
		}
		playlists = append(playlists, playlist)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during playlist rows iteration: %w", err)
	}
	return playlists, nil
}

// GetPlaylistSongs retrieves the songs of a playlist in insertion order. The
// inner join drops links whose song has been deleted.
func (r *mysqlPlaylistRepository) GetPlaylistSongs(playlistID int64) ([]*model.Song, error) {
	query := `SELECT s.id, s.title, s.release_date, s.lyrics, s.file_name, s.singer, s.genre,
		s.song_rating, s.lyrics_rating, s.artist_id, s.album_id, s.created_at, s.updated_at
		FROM playlist_songs ps
		JOIN songs s ON s.id = ps.song_id
		WHERE ps.playlist_id = ?
		ORDER BY ps.position`
	rows, err := r.db.Query(query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs for playlist %d: %w", playlistID, err)
	}
	defer rows.Close()

	songs := make([]*model.Song, 0)
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playlist song row: %w", err)
		}
		songs = append(songs, song)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during playlist song rows iteration: %w", err)
	}
	return songs, nil
}
