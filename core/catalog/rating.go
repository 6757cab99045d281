package catalog

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"melodex/model"
	"melodex/repository"
)

// RatingService records song and lyrics ratings and computes the per-artist
// average. Ratings are last-write-wins; there is no history and no averaging
// across raters.
type RatingService struct {
	songs  repository.SongRepository
	albums repository.AlbumRepository
}

// NewRatingService creates a new RatingService.
func NewRatingService(songs repository.SongRepository, albums repository.AlbumRepository) *RatingService {
	return &RatingService{songs: songs, albums: albums}
}

func parseRating(rating string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(rating))
	if err != nil {
		return 0, fmt.Errorf("%w: rating %q is not an integer", ErrValidation, rating)
	}
	return value, nil
}

// RateSong overwrites the song rating.
func (s *RatingService) RateSong(songID int64, rating string) (*model.Song, error) {
	value, err := parseRating(rating)
	if err != nil {
		return nil, err
	}

	song, err := s.songs.GetSongByID(songID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up song %d: %w", songID, err)
	}
	if song == nil {
		return nil, fmt.Errorf("%w: song %d does not exist", ErrNotFound, songID)
	}

	if err := s.songs.UpdateSongRating(songID, float64(value)); err != nil {
		return nil, fmt.Errorf("failed to store rating for song %d: %w", songID, err)
	}

	song.SongRating = sql.NullFloat64{Float64: float64(value), Valid: true}
	return song, nil
}

// RateLyrics overwrites the lyrics rating.
func (s *RatingService) RateLyrics(songID int64, rating string) (*model.Song, error) {
	value, err := parseRating(rating)
	if err != nil {
		return nil, err
	}

	song, err := s.songs.GetSongByID(songID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up song %d: %w", songID, err)
	}
	if song == nil {
		return nil, fmt.Errorf("%w: song %d does not exist", ErrNotFound, songID)
	}

	if err := s.songs.UpdateLyricsRating(songID, float64(value)); err != nil {
		return nil, fmt.Errorf("failed to store lyrics rating for song %d: %w", songID, err)
	}

	song.LyricsRating = sql.NullFloat64{Float64: float64(value), Valid: true}
	return song, nil
}

func averageRating(songs []*model.Song) float64 {
	total := 0
	for _, song := range songs {
		if song.SongRating.Valid {
			// Ratings are truncated to integers before summing.
			total += int(song.SongRating.Float64)
		}
	}
	// Unrated songs contribute 0 to the sum but count in the denominator.
	return float64(total) / float64(len(songs))
}

// AverageSongRating averages the artist's song ratings over all of their
// songs. Returns ErrNoSongs when the artist owns none; callers must not
// compute an average in that case.
func (s *RatingService) AverageSongRating(artistID int64) (float64, error) {
	songs, err := s.songs.GetSongsByArtistID(artistID)
	if err != nil {
		return 0, fmt.Errorf("failed to load songs for artist %d: %w", artistID, err)
	}
	if len(songs) == 0 {
		return 0, fmt.Errorf("%w: artist %d", ErrNoSongs, artistID)
	}
	return averageRating(songs), nil
}

// CreatorOverview is the creator dashboard summary. HasSongs is false for a
// freshly promoted creator, in which case the counts and average are zero
// and the caller shows the getting-started state.
type CreatorOverview struct {
	HasSongs      bool    `json:"hasSongs"`
	TotalSongs    int     `json:"totalSongs"`
	TotalAlbums   int     `json:"totalAlbums"`
	AverageRating float64 `json:"averageRating"`
}

// CreatorOverview summarizes an artist's catalog.
func (s *RatingService) CreatorOverview(artistID int64) (*CreatorOverview, error) {
	songs, err := s.songs.GetSongsByArtistID(artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to load songs for artist %d: %w", artistID, err)
	}
	if len(songs) == 0 {
		return &CreatorOverview{HasSongs: false}, nil
	}

	albums, err := s.albums.GetAlbumsByArtistID(artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to load albums for artist %d: %w", artistID, err)
	}

	return &CreatorOverview{
		HasSongs:      true,
		TotalSongs:    len(songs),
		TotalAlbums:   len(albums),
		AverageRating: averageRating(songs),
	}, nil
}
