package catalog

import (
	"errors"
	"testing"

	"melodex/model"
)

func TestCreatePlaylistSkipsUnknownSongs(t *testing.T) {
	songs := newFakeSongRepo()
	playlists := newFakePlaylistRepo(songs)
	svc := NewPlaylistService(playlists, songs)

	id, err := songs.CreateSong(&model.Song{Title: "Echoes"})
	if err != nil {
		t.Fatalf("seed song: %v", err)
	}

	playlist, err := svc.CreatePlaylist("Mix", []int64{id, 999})
	if err != nil {
		t.Fatalf("create playlist: %v", err)
	}

	linked, err := svc.PlaylistSongs(playlist.ID)
	if err != nil {
		t.Fatalf("playlist songs: %v", err)
	}
	if len(linked) != 1 || linked[0].ID != id {
		t.Fatalf("expected only the resolvable song, got %+v", linked)
	}
}

func TestCreatePlaylistEmptyName(t *testing.T) {
	songs := newFakeSongRepo()
	svc := NewPlaylistService(newFakePlaylistRepo(songs), songs)

	if _, err := svc.CreatePlaylist("", nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty name, got %v", err)
	}
}

func TestPlaylistKeepsInsertionOrder(t *testing.T) {
	songs := newFakeSongRepo()
	playlists := newFakePlaylistRepo(songs)
	svc := NewPlaylistService(playlists, songs)

	first, _ := songs.CreateSong(&model.Song{Title: "First"})
	second, _ := songs.CreateSong(&model.Song{Title: "Second"})
	third, _ := songs.CreateSong(&model.Song{Title: "Third"})

	playlist, err := svc.CreatePlaylist("Ordered", []int64{third, first, second})
	if err != nil {
		t.Fatalf("create playlist: %v", err)
	}

	linked, err := svc.PlaylistSongs(playlist.ID)
	if err != nil {
		t.Fatalf("playlist songs: %v", err)
	}
	want := []string{"Third", "First", "Second"}
	if len(linked) != len(want) {
		t.Fatalf("expected %d songs, got %d", len(want), len(linked))
	}
	for i, title := range want {
		if linked[i].Title != title {
			t.Fatalf("position %d: expected %q, got %q", i, title, linked[i].Title)
		}
	}
}

func TestDeletedSongLeavesDanglingReference(t *testing.T) {
	songs := newFakeSongRepo()
	playlists := newFakePlaylistRepo(songs)
	svc := NewPlaylistService(playlists, songs)

	keep, _ := songs.CreateSong(&model.Song{Title: "Keep"})
	gone, _ := songs.CreateSong(&model.Song{Title: "Gone"})

	playlist, err := svc.CreatePlaylist("Mix", []int64{keep, gone})
	if err != nil {
		t.Fatalf("create playlist: %v", err)
	}

	if err := songs.DeleteSong(gone); err != nil {
		t.Fatalf("delete song: %v", err)
	}

	linked, err := svc.PlaylistSongs(playlist.ID)
	if err != nil {
		t.Fatalf("playlist songs: %v", err)
	}
	if len(linked) != 1 || linked[0].ID != keep {
		t.Fatalf("expected the deleted song to be skipped, got %+v", linked)
	}
}

func TestPlaylistSongsUnknownPlaylist(t *testing.T) {
	songs := newFakeSongRepo()
	svc := NewPlaylistService(newFakePlaylistRepo(songs), songs)

	if _, err := svc.PlaylistSongs(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
