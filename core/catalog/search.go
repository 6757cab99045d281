package catalog

import (
	"fmt"
	"strconv"

	"melodex/model"
	"melodex/repository"
)

// SearchService answers the combined album/song search. Both halves must
// produce results for the call to succeed; an empty album result aborts the
// whole search before songs are looked at.
type SearchService struct {
	albums repository.AlbumRepository
	songs  repository.SongRepository
}

// NewSearchService creates a new SearchService.
func NewSearchService(albums repository.AlbumRepository, songs repository.SongRepository) *SearchService {
	return &SearchService{albums: albums, songs: songs}
}

// SearchResult bundles the matched albums and songs.
type SearchResult struct {
	Albums []*model.Album `json:"albums"`
	Songs  []*model.Song  `json:"songs"`
}

// Search matches albums by name, then by genre, then songs by title, then by
// exact rating when the song query parses as an integer. A song query that is
// neither a title match nor numeric simply yields no songs.
func (s *SearchService) Search(albumQuery, songQuery string) (*SearchResult, error) {
	albums, err := s.albums.SearchByName(albumQuery)
	if err != nil {
		return nil, fmt.Errorf("album name search failed: %w", err)
	}

	if len(albums) == 0 {
		albums, err = s.albums.SearchByGenre(albumQuery)
		if err != nil {
			return nil, fmt.Errorf("album genre search failed: %w", err)
		}
	}

	if len(albums) == 0 {
		return nil, fmt.Errorf("%w: no albums or genre found", ErrNotFound)
	}

	songs, err := s.songs.SearchByTitle(songQuery)
	if err != nil {
		return nil, fmt.Errorf("song title search failed: %w", err)
	}

	if len(songs) == 0 {
		if rating, convErr := strconv.Atoi(songQuery); convErr == nil {
			songs, err = s.songs.SearchByRating(rating)
			if err != nil {
				return nil, fmt.Errorf("song rating search failed: %w", err)
			}
		}
		// A non-numeric query falls through with no songs.
	}

	if len(songs) == 0 {
		return nil, fmt.Errorf("%w: no songs found", ErrNotFound)
	}

	return &SearchResult{Albums: albums, Songs: songs}, nil
}
