package repository

import (
	"database/sql"
	"fmt"

	"melodex/model"
)

// ArtistRepository defines the interface for artist data operations.
type ArtistRepository interface {
	GetArtistByID(id int64) (*model.Artist, error)
	// GetUserByArtistID resolves the user owning an artist profile, used for
	// display names on song pages.
	GetUserByArtistID(artistID int64) (*model.User, error)
}

// mysqlArtistRepository implements ArtistRepository for MySQL.
type mysqlArtistRepository struct {
	db *sql.DB
}

// NewMySQLArtistRepository creates a new mysqlArtistRepository.
func NewMySQLArtistRepository(db *sql.DB) ArtistRepository {
	return &mysqlArtistRepository{db: db}
}

// GetArtistByID retrieves an artist by its ID.
func (r *mysqlArtistRepository) GetArtistByID(id int64) (*model.Artist, error) {
	query := "SELECT id, created_at, updated_at FROM artists WHERE id = ?"
	artist := &model.Artist{}
	err := r.db.QueryRow(query, id).Scan(&artist.ID, &artist.CreatedAt, &artist.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Artist not found
		}
		return nil, fmt.Errorf("failed to scan artist row for ID %d: %w", id, err)
	}
	return artist, nil
}

// GetUserByArtistID retrieves the user linked to the given artist.
func (r *mysqlArtistRepository) GetUserByArtistID(artistID int64) (*model.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE artist_id = ?"
	user, err := scanUser(r.db.QueryRow(query, artistID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // No user linked to this artist
		}
		return nil, fmt.Errorf("failed to scan user row for artist ID %d: %w", artistID, err)
	}
	return user, nil
}
