package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"melodex/logger"
	"melodex/model"
	"melodex/repository"

	"github.com/google/uuid"
)

// AudioStore abstracts the object store holding uploaded audio files.
type AudioStore interface {
	SaveAudio(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error
	PlaybackURL(ctx context.Context, objectName string) (string, error)
	RemoveAudio(ctx context.Context, objectName string) error
}

// Only one audio container is accepted for upload.
const allowedAudioExt = ".mp3"

const releaseDateLayout = "2006-01-02"

// SongService owns song uploads and catalog mutations. Uploads require a
// creator session; the audio object is written to the store before the song
// row is recorded, so a stored file name always resolves to a playable asset.
type SongService struct {
	songs   repository.SongRepository
	artists repository.ArtistRepository
	store   AudioStore
}

// NewSongService creates a new SongService.
func NewSongService(songs repository.SongRepository, artists repository.ArtistRepository, store AudioStore) *SongService {
	return &SongService{songs: songs, artists: artists, store: store}
}

// UploadSongInput carries the multipart upload fields.
type UploadSongInput struct {
	Title       string
	ReleaseDate string
	Lyrics      string
	Singer      string
	FileName    string
	File        io.Reader
	FileSize    int64
}

// UploadSong validates the input, stores the audio file and records the song.
// The audio file itself is optional; when present it must be an .mp3.
func (s *SongService) UploadSong(ctx context.Context, sess *model.Session, in UploadSongInput) (*model.Song, error) {
	if sess == nil || !sess.IsCreator() {
		return nil, fmt.Errorf("%w: a creator session is required to upload songs", ErrAuth)
	}

	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
	}

	releaseDate, err := time.Parse(releaseDateLayout, in.ReleaseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: release date %q must be YYYY-MM-DD", ErrValidation, in.ReleaseDate)
	}

	song := &model.Song{
		Title:       in.Title,
		ReleaseDate: releaseDate,
		Lyrics:      in.Lyrics,
		Genre:       model.DefaultGenre,
		ArtistID:    sql.NullInt64{Int64: sess.ArtistID, Valid: true},
	}
	if in.Singer != "" {
		song.Singer = sql.NullString{String: in.Singer, Valid: true}
	}

	if in.File != nil {
		ext := strings.ToLower(filepath.Ext(in.FileName))
		if ext != allowedAudioExt {
			return nil, fmt.Errorf("%w: only %s uploads are accepted, got %q", ErrValidation, allowedAudioExt, ext)
		}

		objectName := fmt.Sprintf("audio/%s%s", uuid.NewString(), ext)
		if err := s.store.SaveAudio(ctx, objectName, in.File, in.FileSize, "audio/mpeg"); err != nil {
			return nil, fmt.Errorf("failed to store audio for %q: %w", in.Title, err)
		}
		song.FileName = sql.NullString{String: objectName, Valid: true}
	}

	id, err := s.songs.CreateSong(song)
	if err != nil {
		return nil, fmt.Errorf("failed to record song %q: %w", in.Title, err)
	}

	song.ID = id
	logger.Info("song uploaded",
		logger.Int64("songId", id),
		logger.String("title", in.Title),
		logger.Int64("artistId", sess.ArtistID))
	return song, nil
}

// SongDetail is a song plus its artist's display name.
type SongDetail struct {
	Song       *model.Song `json:"song"`
	ArtistName string      `json:"artistName"`
}

// GetSong returns a song with its artist's display name. Songs without a
// resolvable artist get a fallback name.
func (s *SongService) GetSong(id int64) (*SongDetail, error) {
	song, err := s.songs.GetSongByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up song %d: %w", id, err)
	}
	if song == nil {
		return nil, fmt.Errorf("%w: song %d does not exist", ErrNotFound, id)
	}

	artistName := "Artist not found"
	if song.ArtistID.Valid {
		owner, err := s.artists.GetUserByArtistID(song.ArtistID.Int64)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve artist for song %d: %w", id, err)
		}
		if owner != nil && owner.Name.Valid {
			artistName = owner.Name.String
		}
	}

	return &SongDetail{Song: song, ArtistName: artistName}, nil
}

// UpdateSong rewrites the title and lyrics of a song.
func (s *SongService) UpdateSong(id int64, title, lyrics string) (*model.Song, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
	}

	song, err := s.songs.GetSongByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up song %d: %w", id, err)
	}
	if song == nil {
		return nil, fmt.Errorf("%w: song %d does not exist", ErrNotFound, id)
	}

	if err := s.songs.UpdateSongInfo(id, title, lyrics); err != nil {
		return nil, err
	}

	song.Title = title
	song.Lyrics = lyrics
	return song, nil
}

// DeleteSong removes a song. References from albums and playlists are left
// dangling; playlist reads skip them.
func (s *SongService) DeleteSong(id int64) error {
	song, err := s.songs.GetSongByID(id)
	if err != nil {
		return fmt.Errorf("failed to look up song %d: %w", id, err)
	}
	if song == nil {
		return fmt.Errorf("%w: song %d does not exist", ErrNotFound, id)
	}
	return s.songs.DeleteSong(id)
}

// ListSongs returns every song in the catalog.
func (s *SongService) ListSongs() ([]*model.Song, error) {
	return s.songs.GetAllSongs()
}

// SongsByGenre returns the songs with the given genre.
func (s *SongService) SongsByGenre(genre string) ([]*model.Song, error) {
	return s.songs.GetSongsByGenre(genre)
}

// PlaybackURL resolves the stored audio object to a playable URL.
func (s *SongService) PlaybackURL(ctx context.Context, songID int64) (string, error) {
	song, err := s.songs.GetSongByID(songID)
	if err != nil {
		return "", fmt.Errorf("failed to look up song %d: %w", songID, err)
	}
	if song == nil {
		return "", fmt.Errorf("%w: song %d does not exist", ErrNotFound, songID)
	}
	if !song.FileName.Valid || song.FileName.String == "" {
		return "", fmt.Errorf("%w: song %d has no audio file attached", ErrNotFound, songID)
	}
	return s.store.PlaybackURL(ctx, song.FileName.String)
}
