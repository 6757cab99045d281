package catalog

import (
	"database/sql"
	"fmt"

	"melodex/model"
	"melodex/repository"
)

// AlbumService owns album creation and listing.
type AlbumService struct {
	albums repository.AlbumRepository
}

// NewAlbumService creates a new AlbumService.
func NewAlbumService(albums repository.AlbumRepository) *AlbumService {
	return &AlbumService{albums: albums}
}

// CreateAlbum records an album for the session's artist.
func (s *AlbumService) CreateAlbum(sess *model.Session, name, genre string) (*model.Album, error) {
	if sess == nil || !sess.IsCreator() {
		return nil, fmt.Errorf("%w: a creator session is required to create albums", ErrAuth)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: album name cannot be empty", ErrValidation)
	}

	album := &model.Album{
		Name:     name,
		Genre:    genre,
		ArtistID: sql.NullInt64{Int64: sess.ArtistID, Valid: true},
	}

	id, err := s.albums.CreateAlbum(album)
	if err != nil {
		return nil, fmt.Errorf("failed to create album %q: %w", name, err)
	}

	album.ID = id
	return album, nil
}

// ListAlbums returns every album in the catalog.
func (s *AlbumService) ListAlbums() ([]*model.Album, error) {
	return s.albums.GetAllAlbums()
}
