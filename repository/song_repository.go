package repository

import (
	"database/sql"
	"fmt"
	"time"

	"melodex/model"
)

// SongRepository defines the interface for song data operations.
type SongRepository interface {
	CreateSong(song *model.Song) (int64, error)
	GetSongByID(id int64) (*model.Song, error)
	GetAllSongs() ([]*model.Song, error)
	GetSongsByArtistID(artistID int64) ([]*model.Song, error)
	GetSongsByGenre(genre string) ([]*model.Song, error)
	SearchByTitle(q string) ([]*model.Song, error)
	SearchByRating(rating int) ([]*model.Song, error)
	UpdateSongInfo(id int64, title, lyrics string) error
	UpdateSongRating(id int64, rating float64) error
	UpdateLyricsRating(id int64, rating float64) error
	DeleteSong(id int64) error
	CountSongs() (int64, error)
	CountDistinctGenres() (int64, error)
}

// mysqlSongRepository implements SongRepository for MySQL.
type mysqlSongRepository struct {
	db *sql.DB
}

// NewMySQLSongRepository creates a new mysqlSongRepository.
func NewMySQLSongRepository(db *sql.DB) SongRepository {
	return &mysqlSongRepository{db: db}
}

const songColumns = "id, title, release_date, lyrics, file_name, singer, genre, song_rating, lyrics_rating, artist_id, album_id, created_at, updated_at"

func scanSong(row interface{ Scan(...interface{}) error }) (*model.Song, error) {
	song := &model.Song{}
	err := row.Scan(&song.ID, &song.Title, &song.ReleaseDate, &song.Lyrics, &song.FileName,
		&song.Singer, &song.Genre, &song.SongRating, &song.LyricsRating,
		&song.ArtistID, &song.AlbumID, &song.CreatedAt, &song.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return song, nil
}

func (r *mysqlSongRepository) querySongs(query string, args ...interface{}) ([]*model.Song, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	songs := make([]*model.Song, 0)
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song row: %w", err)
		}
		songs = append(songs, song)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during song rows iteration: %w", err)
	}
	return songs, nil
}

// CreateSong adds a new song to the database.
func (r *mysqlSongRepository) CreateSong(song *model.Song) (int64, error) {
	query := `INSERT INTO songs (title, release_date, lyrics, file_name, singer, genre, song_rating, lyrics_rating, artist_id, album_id, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement for CreateSong: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	res, err := stmt.Exec(song.Title, song.ReleaseDate, song.Lyrics, song.FileName, song.Singer,
		song.Genre, song.SongRating, song.LyricsRating, song.ArtistID, song.AlbumID, now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to execute CreateSong: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreateSong: %w", err)
	}
	return id, nil
}

// GetSongByID retrieves a song by its ID.
func (r *mysqlSongRepository) GetSongByID(id int64) (*model.Song, error) {
	query := "SELECT " + songColumns + " FROM songs WHERE id = ?"
	song, err := scanSong(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Song not found
		}
		return nil, fmt.Errorf("failed to scan song by ID %d: %w", id, err)
	}
	return song, nil
}

// GetAllSongs retrieves all songs from the database.
func (r *mysqlSongRepository) GetAllSongs() ([]*model.Song, error) {
	return r.querySongs("SELECT " + songColumns + " FROM songs ORDER BY created_at DESC")
}

// GetSongsByArtistID retrieves all songs owned by an artist.
func (r *mysqlSongRepository) GetSongsByArtistID(artistID int64) ([]*model.Song, error) {
	return r.querySongs("SELECT "+songColumns+" FROM songs WHERE artist_id = ? ORDER BY created_at DESC", artistID)
}

// GetSongsByGenre retrieves all songs with the given genre.
func (r *mysqlSongRepository) GetSongsByGenre(genre string) ([]*model.Song, error) {
	return r.querySongs("SELECT "+songColumns+" FROM songs WHERE genre = ?", genre)
}

// SearchByTitle retrieves songs whose title contains the query, case-insensitively.
func (r *mysqlSongRepository) SearchByTitle(q string) ([]*model.Song, error) {
	return r.querySongs("SELECT "+songColumns+" FROM songs WHERE LOWER(title) LIKE CONCAT('%', LOWER(?), '%')", q)
}

// SearchByRating retrieves songs whose song_rating equals the given value.
func (r *mysqlSongRepository) SearchByRating(rating int) ([]*model.Song, error) {
	return r.querySongs("SELECT "+songColumns+" FROM songs WHERE song_rating = ?", rating)
}

// UpdateSongInfo updates the title and lyrics of a song.
func (r *mysqlSongRepository) UpdateSongInfo(id int64, title, lyrics string) error {
	query := "UPDATE songs SET title = ?, lyrics = ?, updated_at = ? WHERE id = ?"
	if _, err := r.db.Exec(query, title, lyrics, time.Now(), id); err != nil {
		return fmt.Errorf("failed to update song %d: %w", id, err)
	}
	return nil
}

// UpdateSongRating overwrites the song rating. Last write wins.
func (r *mysqlSongRepository) UpdateSongRating(id int64, rating float64) error {
	query := "UPDATE songs SET song_rating = ?, updated_at = ? WHERE id = ?"
	if _, err := r.db.Exec(query, rating, time.Now(), id); err != nil {
		return fmt.Errorf("failed to update rating for song %d: %w", id, err)
	}
	return nil
}

// UpdateLyricsRating overwrites the lyrics rating. Last write wins.
func (r *mysqlSongRepository) UpdateLyricsRating(id int64, rating float64) error {
	query := "UPDATE songs SET lyrics_rating = ?, updated_at = ? WHERE id = ?"
	if _, err := r.db.Exec(query, rating, time.Now(), id); err != nil {
		return fmt.Errorf("failed to update lyrics rating for song %d: %w", id, err)
	}
	return nil
}

// DeleteSong removes the song row. Album and playlist references are left
// dangling on purpose; playlist reads skip ids that no longer resolve.
func (r *mysqlSongRepository) DeleteSong(id int64) error {
	if _, err := r.db.Exec("DELETE FROM songs WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete song %d: %w", id, err)
	}
	return nil
}

// CountSongs returns the total number of songs.
func (r *mysqlSongRepository) CountSongs() (int64, error) {
	var count int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM songs").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return count, nil
}

// CountDistinctGenres returns the number of distinct song genres.
func (r *mysqlSongRepository) CountDistinctGenres() (int64, error) {
	var count int64
	if err := r.db.QueryRow("SELECT COUNT(DISTINCT genre) FROM songs").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count distinct genres: %w", err)
	}
	return count, nil
}
