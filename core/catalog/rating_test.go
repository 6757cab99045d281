package catalog

import (
	"database/sql"
	"errors"
	"testing"

	"melodex/model"
)

func TestRateSongLastWriteWins(t *testing.T) {
	songs := newFakeSongRepo()
	svc := NewRatingService(songs, newFakeAlbumRepo())

	id, err := songs.CreateSong(&model.Song{Title: "Echoes", Genre: model.DefaultGenre})
	if err != nil {
		t.Fatalf("seed song: %v", err)
	}

	if _, err := svc.RateSong(id, "5"); err != nil {
		t.Fatalf("first rating: %v", err)
	}
	song, err := svc.RateSong(id, "3")
	if err != nil {
		t.Fatalf("second rating: %v", err)
	}
	if !song.SongRating.Valid || song.SongRating.Float64 != 3 {
		t.Fatalf("expected final rating 3, got %+v", song.SongRating)
	}

	stored, _ := songs.GetSongByID(id)
	if stored.SongRating.Float64 != 3 {
		t.Fatalf("expected stored rating 3, got %v", stored.SongRating.Float64)
	}
}

func TestRateSongValidation(t *testing.T) {
	songs := newFakeSongRepo()
	svc := NewRatingService(songs, newFakeAlbumRepo())

	id, err := songs.CreateSong(&model.Song{Title: "Echoes"})
	if err != nil {
		t.Fatalf("seed song: %v", err)
	}

	if _, err := svc.RateSong(id, "great"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for non-integer rating, got %v", err)
	}
	if _, err := svc.RateSong(999, "4"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown song, got %v", err)
	}
}

func TestRateLyrics(t *testing.T) {
	songs := newFakeSongRepo()
	svc := NewRatingService(songs, newFakeAlbumRepo())

	id, err := songs.CreateSong(&model.Song{Title: "Echoes"})
	if err != nil {
		t.Fatalf("seed song: %v", err)
	}

	song, err := svc.RateLyrics(id, "4")
	if err != nil {
		t.Fatalf("rate lyrics: %v", err)
	}
	if !song.LyricsRating.Valid || song.LyricsRating.Float64 != 4 {
		t.Fatalf("expected lyrics rating 4, got %+v", song.LyricsRating)
	}
	if song.SongRating.Valid {
		t.Fatalf("song rating must not be touched by a lyrics rating")
	}
}

func TestAverageSongRatingCountsUnratedSongs(t *testing.T) {
	songs := newFakeSongRepo()
	svc := NewRatingService(songs, newFakeAlbumRepo())

	artist := sql.NullInt64{Int64: 7, Valid: true}
	seed := []*model.Song{
		{Title: "A", ArtistID: artist, SongRating: sql.NullFloat64{Float64: 4, Valid: true}},
		{Title: "B", ArtistID: artist},
		{Title: "C", ArtistID: artist, SongRating: sql.NullFloat64{Float64: 2, Valid: true}},
	}
	for _, song := range seed {
		if _, err := songs.CreateSong(song); err != nil {
			t.Fatalf("seed song: %v", err)
		}
	}

	avg, err := svc.AverageSongRating(7)
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	// sum=6 over 3 songs: the unrated song counts in the denominator.
	if avg != 2.0 {
		t.Fatalf("expected average 2.0, got %v", avg)
	}
}

func TestAverageSongRatingTruncatesBeforeSumming(t *testing.T) {
	songs := newFakeSongRepo()
	svc := NewRatingService(songs, newFakeAlbumRepo())

	artist := sql.NullInt64{Int64: 7, Valid: true}
	seed := []*model.Song{
		{Title: "A", ArtistID: artist, SongRating: sql.NullFloat64{Float64: 4.9, Valid: true}},
		{Title: "B", ArtistID: artist, SongRating: sql.NullFloat64{Float64: 3.9, Valid: true}},
	}
	for _, song := range seed {
		if _, err := songs.CreateSong(song); err != nil {
			t.Fatalf("seed song: %v", err)
		}
	}

	avg, err := svc.AverageSongRating(7)
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	// 4.9 and 3.9 truncate to 4 and 3 before the sum.
	if avg != 3.5 {
		t.Fatalf("expected average 3.5, got %v", avg)
	}
}

func TestAverageSongRatingNoSongs(t *testing.T) {
	svc := NewRatingService(newFakeSongRepo(), newFakeAlbumRepo())

	if _, err := svc.AverageSongRating(7); !errors.Is(err, ErrNoSongs) {
		t.Fatalf("expected ErrNoSongs, got %v", err)
	}
}

func TestCreatorOverview(t *testing.T) {
	songs := newFakeSongRepo()
	albums := newFakeAlbumRepo()
	svc := NewRatingService(songs, albums)

	// A freshly promoted creator sees the getting-started state.
	overview, err := svc.CreatorOverview(7)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.HasSongs {
		t.Fatalf("expected HasSongs=false for an artist with no songs")
	}

	artist := sql.NullInt64{Int64: 7, Valid: true}
	if _, err := songs.CreateSong(&model.Song{Title: "A", ArtistID: artist,
		SongRating: sql.NullFloat64{Float64: 4, Valid: true}}); err != nil {
		t.Fatalf("seed song: %v", err)
	}
	if _, err := songs.CreateSong(&model.Song{Title: "B", ArtistID: artist}); err != nil {
		t.Fatalf("seed song: %v", err)
	}
	if _, err := albums.CreateAlbum(&model.Album{Name: "LP", ArtistID: artist}); err != nil {
		t.Fatalf("seed album: %v", err)
	}

	overview, err = svc.CreatorOverview(7)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if !overview.HasSongs || overview.TotalSongs != 2 || overview.TotalAlbums != 1 {
		t.Fatalf("unexpected overview %+v", overview)
	}
	if overview.AverageRating != 2.0 {
		t.Fatalf("expected average 2.0, got %v", overview.AverageRating)
	}
}
