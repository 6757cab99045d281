package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"melodex/model"
	"melodex/repository"
)

// In-memory repository fakes for service tests.

type fakeUserRepo struct {
	users        map[int64]*model.User
	nextUserID   int64
	nextArtistID int64
	artistRows   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*model.User)}
}

func (r *fakeUserRepo) CreateUser(user *model.User) (int64, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return 0, fmt.Errorf("user %q: %w", user.Username, repository.ErrDuplicateUser)
		}
	}
	r.nextUserID++
	stored := *user
	stored.ID = r.nextUserID
	r.users[stored.ID] = &stored
	return stored.ID, nil
}

func (r *fakeUserRepo) GetUserByID(id int64) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByUsername(username string) (*model.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateRole(userID int64, role string) error {
	user, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("user %d not found", userID)
	}
	user.Role = role
	return nil
}

func (r *fakeUserRepo) PromoteToCreator(userID int64) (int64, error) {
	user, ok := r.users[userID]
	if !ok {
		return 0, fmt.Errorf("user %d not found", userID)
	}
	if user.ArtistID.Valid {
		return user.ArtistID.Int64, nil
	}
	r.nextArtistID++
	r.artistRows++
	user.ArtistID.Int64 = r.nextArtistID
	user.ArtistID.Valid = true
	user.Role = model.RoleCreator
	return r.nextArtistID, nil
}

func (r *fakeUserRepo) CountByRole() (total, creators, admins int64, err error) {
	for _, user := range r.users {
		total++
		switch user.Role {
		case model.RoleCreator:
			creators++
		case model.RoleAdmin:
			admins++
		}
	}
	return total, creators, admins, nil
}

type fakeSongRepo struct {
	songs  map[int64]*model.Song
	order  []int64
	nextID int64
}

func newFakeSongRepo() *fakeSongRepo {
	return &fakeSongRepo{songs: make(map[int64]*model.Song)}
}

func (r *fakeSongRepo) CreateSong(song *model.Song) (int64, error) {
	r.nextID++
	stored := *song
	stored.ID = r.nextID
	r.songs[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	return stored.ID, nil
}

func (r *fakeSongRepo) GetSongByID(id int64) (*model.Song, error) {
	song, ok := r.songs[id]
	if !ok {
		return nil, nil
	}
	copied := *song
	return &copied, nil
}

func (r *fakeSongRepo) all() []*model.Song {
	songs := make([]*model.Song, 0, len(r.order))
	for _, id := range r.order {
		if song, ok := r.songs[id]; ok {
			copied := *song
			songs = append(songs, &copied)
		}
	}
	return songs
}

func (r *fakeSongRepo) GetAllSongs() ([]*model.Song, error) {
	return r.all(), nil
}

func (r *fakeSongRepo) GetSongsByArtistID(artistID int64) ([]*model.Song, error) {
	songs := make([]*model.Song, 0)
	for _, song := range r.all() {
		if song.ArtistID.Valid && song.ArtistID.Int64 == artistID {
			songs = append(songs, song)
		}
	}
	return songs, nil
}

func (r *fakeSongRepo) GetSongsByGenre(genre string) ([]*model.Song, error) {
	songs := make([]*model.Song, 0)
	for _, song := range r.all() {
		if song.Genre == genre {
			songs = append(songs, song)
		}
	}
	return songs, nil
}

func (r *fakeSongRepo) SearchByTitle(q string) ([]*model.Song, error) {
	songs := make([]*model.Song, 0)
	for _, song := range r.all() {
		if strings.Contains(strings.ToLower(song.Title), strings.ToLower(q)) {
			songs = append(songs, song)
		}
	}
	return songs, nil
}

func (r *fakeSongRepo) SearchByRating(rating int) ([]*model.Song, error) {
	songs := make([]*model.Song, 0)
	for _, song := range r.all() {
		if song.SongRating.Valid && song.SongRating.Float64 == float64(rating) {
			songs = append(songs, song)
		}
	}
	return songs, nil
}

func (r *fakeSongRepo) UpdateSongInfo(id int64, title, lyrics string) error {
	song, ok := r.songs[id]
	if !ok {
		return fmt.Errorf("song %d not found", id)
	}
	song.Title = title
	song.Lyrics = lyrics
	return nil
}

func (r *fakeSongRepo) UpdateSongRating(id int64, rating float64) error {
	song, ok := r.songs[id]
	if !ok {
		return fmt.Errorf("song %d not found", id)
	}
	song.SongRating.Float64 = rating
	song.SongRating.Valid = true
	return nil
}

func (r *fakeSongRepo) UpdateLyricsRating(id int64, rating float64) error {
	song, ok := r.songs[id]
	if !ok {
		return fmt.Errorf("song %d not found", id)
	}
	song.LyricsRating.Float64 = rating
	song.LyricsRating.Valid = true
	return nil
}

func (r *fakeSongRepo) DeleteSong(id int64) error {
	delete(r.songs, id)
	return nil
}

func (r *fakeSongRepo) CountSongs() (int64, error) {
	return int64(len(r.songs)), nil
}

func (r *fakeSongRepo) CountDistinctGenres() (int64, error) {
	genres := make(map[string]struct{})
	for _, song := range r.songs {
		genres[song.Genre] = struct{}{}
	}
	return int64(len(genres)), nil
}

type fakeAlbumRepo struct {
	albums map[int64]*model.Album
	order  []int64
	nextID int64
}

func newFakeAlbumRepo() *fakeAlbumRepo {
	return &fakeAlbumRepo{albums: make(map[int64]*model.Album)}
}

func (r *fakeAlbumRepo) CreateAlbum(album *model.Album) (int64, error) {
	r.nextID++
	stored := *album
	stored.ID = r.nextID
	r.albums[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	return stored.ID, nil
}

func (r *fakeAlbumRepo) GetAlbumByID(id int64) (*model.Album, error) {
	album, ok := r.albums[id]
	if !ok {
		return nil, nil
	}
	copied := *album
	return &copied, nil
}

func (r *fakeAlbumRepo) all() []*model.Album {
	albums := make([]*model.Album, 0, len(r.order))
	for _, id := range r.order {
		if album, ok := r.albums[id]; ok {
			copied := *album
			albums = append(albums, &copied)
		}
	}
	return albums
}

func (r *fakeAlbumRepo) GetAllAlbums() ([]*model.Album, error) {
	return r.all(), nil
}

func (r *fakeAlbumRepo) GetAlbumsByArtistID(artistID int64) ([]*model.Album, error) {
	albums := make([]*model.Album, 0)
	for _, album := range r.all() {
		if album.ArtistID.Valid && album.ArtistID.Int64 == artistID {
			albums = append(albums, album)
		}
	}
	return albums, nil
}

func (r *fakeAlbumRepo) SearchByName(q string) ([]*model.Album, error) {
	albums := make([]*model.Album, 0)
	for _, album := range r.all() {
		if strings.Contains(strings.ToLower(album.Name), strings.ToLower(q)) {
			albums = append(albums, album)
		}
	}
	return albums, nil
}

func (r *fakeAlbumRepo) SearchByGenre(q string) ([]*model.Album, error) {
	albums := make([]*model.Album, 0)
	for _, album := range r.all() {
		if strings.Contains(strings.ToLower(album.Genre), strings.ToLower(q)) {
			albums = append(albums, album)
		}
	}
	return albums, nil
}

func (r *fakeAlbumRepo) CountAlbums() (int64, error) {
	return int64(len(r.albums)), nil
}

type fakePlaylistRepo struct {
	playlists map[int64]*model.Playlist
	links     map[int64][]int64
	songs     *fakeSongRepo
	nextID    int64
}

func newFakePlaylistRepo(songs *fakeSongRepo) *fakePlaylistRepo {
	return &fakePlaylistRepo{
		playlists: make(map[int64]*model.Playlist),
		links:     make(map[int64][]int64),
		songs:     songs,
	}
}

func (r *fakePlaylistRepo) CreatePlaylist(name string, songIDs []int64) (int64, error) {
	r.nextID++
	r.playlists[r.nextID] = &model.Playlist{ID: r.nextID, Name: name}
	r.links[r.nextID] = append([]int64(nil), songIDs...)
	return r.nextID, nil
}

func (r *fakePlaylistRepo) GetPlaylistByID(id int64) (*model.Playlist, error) {
	playlist, ok := r.playlists[id]
	if !ok {
		return nil, nil
	}
	copied := *playlist
	return &copied, nil
}

func (r *fakePlaylistRepo) GetAllPlaylists() ([]*model.Playlist, error) {
	playlists := make([]*model.Playlist, 0, len(r.playlists))
	for _, playlist := range r.playlists {
		copied := *playlist
		playlists = append(playlists, &copied)
	}
	return playlists, nil
}

func (r *fakePlaylistRepo) GetPlaylistSongs(playlistID int64) ([]*model.Song, error) {
	songs := make([]*model.Song, 0)
	for _, songID := range r.links[playlistID] {
		// Dangling links are skipped, like the SQL join.
		song, _ := r.songs.GetSongByID(songID)
		if song != nil {
			songs = append(songs, song)
		}
	}
	return songs, nil
}

type fakeArtistRepo struct {
	users *fakeUserRepo
}

func (r *fakeArtistRepo) GetArtistByID(id int64) (*model.Artist, error) {
	for _, user := range r.users.users {
		if user.ArtistID.Valid && user.ArtistID.Int64 == id {
			return &model.Artist{ID: id}, nil
		}
	}
	return nil, nil
}

func (r *fakeArtistRepo) GetUserByArtistID(artistID int64) (*model.User, error) {
	for _, user := range r.users.users {
		if user.ArtistID.Valid && user.ArtistID.Int64 == artistID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeAudioStore struct {
	objects map[string][]byte
}

func newFakeAudioStore() *fakeAudioStore {
	return &fakeAudioStore{objects: make(map[string][]byte)}
}

func (s *fakeAudioStore) SaveAudio(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	s.objects[objectName] = buf.Bytes()
	return nil
}

func (s *fakeAudioStore) PlaybackURL(ctx context.Context, objectName string) (string, error) {
	if _, ok := s.objects[objectName]; !ok {
		return "", fmt.Errorf("object %q not found", objectName)
	}
	return "https://audio.test/" + objectName, nil
}

func (s *fakeAudioStore) RemoveAudio(ctx context.Context, objectName string) error {
	delete(s.objects, objectName)
	return nil
}
