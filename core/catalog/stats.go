package catalog

import (
	"fmt"

	"melodex/repository"
)

// StatsService computes the fleet-wide aggregates for the admin dashboard.
type StatsService struct {
	users  repository.UserRepository
	songs  repository.SongRepository
	albums repository.AlbumRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(users repository.UserRepository, songs repository.SongRepository, albums repository.AlbumRepository) *StatsService {
	return &StatsService{users: users, songs: songs, albums: albums}
}

// FleetStats is the admin dashboard aggregate.
type FleetStats struct {
	GeneralUsers int64 `json:"generalUsers"`
	CreatorUsers int64 `json:"creatorUsers"`
	AdminUsers   int64 `json:"adminUsers"`
	TotalSongs   int64 `json:"totalSongs"`
	TotalAlbums  int64 `json:"totalAlbums"`
	TotalGenres  int64 `json:"totalGenres"`
}

// FleetStats counts users by role, songs, albums and distinct song genres.
// The general-user count is derived as total minus creators minus admins so
// the three buckets always add up to the user total. Genres are counted over
// songs, consistent with the song total.
func (s *StatsService) FleetStats() (*FleetStats, error) {
	total, creators, admins, err := s.users.CountByRole()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	totalSongs, err := s.songs.CountSongs()
	if err != nil {
		return nil, fmt.Errorf("failed to count songs: %w", err)
	}

	totalAlbums, err := s.albums.CountAlbums()
	if err != nil {
		return nil, fmt.Errorf("failed to count albums: %w", err)
	}

	totalGenres, err := s.songs.CountDistinctGenres()
	if err != nil {
		return nil, fmt.Errorf("failed to count genres: %w", err)
	}

	return &FleetStats{
		GeneralUsers: total - creators - admins,
		CreatorUsers: creators,
		AdminUsers:   admins,
		TotalSongs:   totalSongs,
		TotalAlbums:  totalAlbums,
		TotalGenres:  totalGenres,
	}, nil
}
