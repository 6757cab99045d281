package repository

import (
	"database/sql"
	"fmt"
	"time"

	"melodex/model"
)

// AlbumRepository defines the interface for album data operations.
type AlbumRepository interface {
	CreateAlbum(album *model.Album) (int64, error)
	GetAlbumByID(id int64) (*model.Album, error)
	GetAllAlbums() ([]*model.Album, error)
	GetAlbumsByArtistID(artistID int64) ([]*model.Album, error)
	SearchByName(q string) ([]*model.Album, error)
	SearchByGenre(q string) ([]*model.Album, error)
	CountAlbums() (int64, error)
}

// mysqlAlbumRepository implements AlbumRepository for MySQL.
type mysqlAlbumRepository struct {
	db *sql.DB
}

// NewMySQLAlbumRepository creates a new mysqlAlbumRepository.
func NewMySQLAlbumRepository(db *sql.DB) AlbumRepository {
	return &mysqlAlbumRepository{db: db}
}

const albumColumns = "id, name, genre, artist_id, created_at, updated_at"

func scanAlbum(row interface{ Scan(...interface{}) error }) (*model.Album, error) {
	album := &model.Album{}
	err := row.Scan(&album.ID, &album.Name, &album.Genre, &album.ArtistID, &album.CreatedAt, &album.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return album, nil
}

func (r *mysqlAlbumRepository) queryAlbums(query string, args ...interface{}) ([]*model.Album, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query albums: %w", err)
	}
	defer rows.Close()

	albums := make([]*model.Album, 0)
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan album row: %w", err)
		}
		albums = append(albums, album)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during album rows iteration: %w", err)
	}
	return albums, nil
}

// CreateAlbum adds a new album to the database.
func (r *mysqlAlbumRepository) CreateAlbum(album *model.Album) (int64, error) {
	query := "INSERT INTO albums (name, genre, artist_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement for CreateAlbum: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	res, err := stmt.Exec(album.Name, album.Genre, album.ArtistID, now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to execute CreateAlbum: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreateAlbum: %w", err)
	}
	return id, nil
}

// GetAlbumByID retrieves an album by its ID.
func (r *mysqlAlbumRepository) GetAlbumByID(id int64) (*model.Album, error) {
	query := "SELECT " + albumColumns + " FROM albums WHERE id = ?"
	album, err := scanAlbum(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Album not found
		}
		return nil, fmt.Errorf("failed to scan album by ID %d: %w", id, err)
	}
	return album, nil
}

// GetAllAlbums retrieves all albums from the database.
func (r *mysqlAlbumRepository) GetAllAlbums() ([]*model.Album, error) {
	return r.queryAlbums("SELECT " + albumColumns + " FROM albums ORDER BY created_at DESC")
}

// GetAlbumsByArtistID retrieves all albums owned by an artist.
func (r *mysqlAlbumRepository) GetAlbumsByArtistID(artistID int64) ([]*model.Album, error) {
	return r.queryAlbums("SELECT "+albumColumns+" FROM albums WHERE artist_id = ?", artistID)
}

// SearchByName retrieves albums whose name contains the query, case-insensitively.
func (r *mysqlAlbumRepository) SearchByName(q string) ([]*model.Album, error) {
	return r.queryAlbums("SELECT "+albumColumns+" FROM albums WHERE LOWER(name) LIKE CONCAT('%', LOWER(?), '%')", q)
}

// SearchByGenre retrieves albums whose genre contains the query, case-insensitively.
func (r *mysqlAlbumRepository) SearchByGenre(q string) ([]*model.Album, error) {
	return r.queryAlbums("SELECT "+albumColumns+" FROM albums WHERE LOWER(genre) LIKE CONCAT('%', LOWER(?), '%')", q)
}

// CountAlbums returns the total number of albums.
func (r *mysqlAlbumRepository) CountAlbums() (int64, error) {
	var count int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM albums").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count albums: %w", err)
	}
	return count, nil
}
