package catalog

import (
	"errors"
	"testing"

	"melodex/model"
)

func TestCreateAlbumRequiresCreator(t *testing.T) {
	svc := NewAlbumService(newFakeAlbumRepo())

	if _, err := svc.CreateAlbum(nil, "LP", "Rock"); !errors.Is(err, ErrAuth) {
		t.Fatalf("expected ErrAuth without a session, got %v", err)
	}

	general := &model.Session{UserID: 1, Username: "bob", Role: model.RoleGeneral}
	if _, err := svc.CreateAlbum(general, "LP", "Rock"); !errors.Is(err, ErrAuth) {
		t.Fatalf("expected ErrAuth for a general user, got %v", err)
	}
}

func TestCreateAlbum(t *testing.T) {
	albums := newFakeAlbumRepo()
	svc := NewAlbumService(albums)
	sess := creatorSession()

	if _, err := svc.CreateAlbum(sess, "", "Rock"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty name, got %v", err)
	}

	album, err := svc.CreateAlbum(sess, "Nightfall", "Rock")
	if err != nil {
		t.Fatalf("create album: %v", err)
	}
	if album.ID == 0 {
		t.Fatalf("expected a persisted album id")
	}
	if !album.ArtistID.Valid || album.ArtistID.Int64 != sess.ArtistID {
		t.Fatalf("expected artist id %d, got %+v", sess.ArtistID, album.ArtistID)
	}

	stored, _ := albums.GetAlbumByID(album.ID)
	if stored == nil || stored.Name != "Nightfall" || stored.Genre != "Rock" {
		t.Fatalf("expected the album to be recorded, got %+v", stored)
	}
}
