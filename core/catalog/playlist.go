package catalog

import (
	"fmt"

	"melodex/logger"
	"melodex/model"
	"melodex/repository"
)

// PlaylistService assembles playlists from existing songs. Songs are
// referenced, never copied; ids that do not resolve are skipped without
// surfacing an error, so the resulting playlist may be smaller than asked.
type PlaylistService struct {
	playlists repository.PlaylistRepository
	songs     repository.SongRepository
}

// NewPlaylistService creates a new PlaylistService.
func NewPlaylistService(playlists repository.PlaylistRepository, songs repository.SongRepository) *PlaylistService {
	return &PlaylistService{playlists: playlists, songs: songs}
}

// CreatePlaylist builds a playlist from the given song ids, in order.
func (s *PlaylistService) CreatePlaylist(name string, songIDs []int64) (*model.Playlist, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: playlist name cannot be empty", ErrValidation)
	}

	resolved := make([]int64, 0, len(songIDs))
	for _, id := range songIDs {
		song, err := s.songs.GetSongByID(id)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve song %d: %w", id, err)
		}
		if song == nil {
			// Unknown ids are dropped silently.
			logger.Debug("skipping unknown song in playlist", logger.Int64("songId", id))
			continue
		}
		resolved = append(resolved, id)
	}

	playlistID, err := s.playlists.CreatePlaylist(name, resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist %q: %w", name, err)
	}

	logger.Info("playlist created",
		logger.Int64("playlistId", playlistID),
		logger.String("name", name),
		logger.Int("songs", len(resolved)))
	return &model.Playlist{ID: playlistID, Name: name}, nil
}

// PlaylistSongs returns the songs of a playlist in insertion order. Links to
// deleted songs are skipped.
func (s *PlaylistService) PlaylistSongs(playlistID int64) ([]*model.Song, error) {
	playlist, err := s.playlists.GetPlaylistByID(playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up playlist %d: %w", playlistID, err)
	}
	if playlist == nil {
		return nil, fmt.Errorf("%w: playlist %d does not exist", ErrNotFound, playlistID)
	}
	return s.playlists.GetPlaylistSongs(playlistID)
}

// ListPlaylists returns every playlist.
func (s *PlaylistService) ListPlaylists() ([]*model.Playlist, error) {
	return s.playlists.GetAllPlaylists()
}
