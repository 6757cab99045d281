package catalog

import (
	"errors"
	"testing"

	"melodex/model"
)

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewIdentityService(users)

	user, err := svc.Register("bob", "x", "Bob")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != model.RoleGeneral {
		t.Fatalf("expected role %q, got %q", model.RoleGeneral, user.Role)
	}
	if user.PasswordHash == "x" {
		t.Fatalf("password must not be stored in plain text")
	}

	sess, err := svc.Login("bob", "x")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.UserID != user.ID {
		t.Fatalf("expected session for user %d, got %d", user.ID, sess.UserID)
	}
	if sess.ArtistID != 0 {
		t.Fatalf("expected no artist id for a general user, got %d", sess.ArtistID)
	}

	if _, err := svc.Login("bob", "y"); !errors.Is(err, ErrAuth) {
		t.Fatalf("expected ErrAuth for wrong password, got %v", err)
	}
	if _, err := svc.Login("nobody", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown username, got %v", err)
	}
	if _, err := svc.Login("", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty credentials, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewIdentityService(users)

	if _, err := svc.Register("bob", "x", "Bob"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register("bob", "y", "Other Bob"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate username, got %v", err)
	}
	if len(users.users) != 1 {
		t.Fatalf("expected exactly one user row, got %d", len(users.users))
	}
}

func TestRegisterEmptyCredentials(t *testing.T) {
	svc := NewIdentityService(newFakeUserRepo())

	if _, err := svc.Register("", "x", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty username, got %v", err)
	}
	if _, err := svc.Register("bob", "", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty password, got %v", err)
	}
}

func TestPromoteToCreatorCreatesExactlyOneArtist(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewIdentityService(users)

	registered, err := svc.Register("bob", "x", "Bob")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, artist, err := svc.PromoteToCreator(registered.ID)
	if err != nil {
		t.Fatalf("first promotion: %v", err)
	}
	if user.Role != model.RoleCreator {
		t.Fatalf("expected role %q, got %q", model.RoleCreator, user.Role)
	}
	if artist == nil || artist.ID == 0 {
		t.Fatalf("expected an artist, got %+v", artist)
	}

	user2, artist2, err := svc.PromoteToCreator(registered.ID)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on repeat promotion, got %v", err)
	}
	// The conflict is soft: the caller still gets the user and artist.
	if user2 == nil || artist2 == nil {
		t.Fatalf("expected user and artist alongside the conflict")
	}
	if artist2.ID != artist.ID {
		t.Fatalf("expected the same artist id, got %d and %d", artist.ID, artist2.ID)
	}
	if users.artistRows != 1 {
		t.Fatalf("expected exactly one artist row, got %d", users.artistRows)
	}
}

func TestPromoteToCreatorUnknownUser(t *testing.T) {
	svc := NewIdentityService(newFakeUserRepo())
	if _, _, err := svc.PromoteToCreator(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPromoteToAdmin(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewIdentityService(users)

	if _, err := svc.Register("alice", "x", "Alice"); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.PromoteToAdmin("alice")
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if user.Role != model.RoleAdmin {
		t.Fatalf("expected role %q, got %q", model.RoleAdmin, user.Role)
	}

	if _, err := svc.PromoteToAdmin("alice"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for repeat promotion, got %v", err)
	}
	if _, err := svc.PromoteToAdmin("nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPromoteToAdminKeepsArtistLink(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewIdentityService(users)

	registered, err := svc.Register("carol", "x", "Carol")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := svc.PromoteToCreator(registered.ID); err != nil {
		t.Fatalf("promote to creator: %v", err)
	}

	user, err := svc.PromoteToAdmin("carol")
	if err != nil {
		t.Fatalf("promote to admin: %v", err)
	}
	if !user.ArtistID.Valid {
		t.Fatalf("expected the artist link to survive the admin promotion")
	}
}

func TestRegisterAdmin(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewIdentityService(users)

	// A fresh username creates an admin account.
	admin, err := svc.RegisterAdmin("root", "x", "Root")
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}
	if admin.Role != model.RoleAdmin {
		t.Fatalf("expected role %q, got %q", model.RoleAdmin, admin.Role)
	}

	// An existing admin is a conflict.
	if _, err := svc.RegisterAdmin("root", "x", "Root"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// An existing non-admin is promoted in place.
	if _, err := svc.Register("bob", "x", "Bob"); err != nil {
		t.Fatalf("register: %v", err)
	}
	promoted, err := svc.RegisterAdmin("bob", "ignored", "ignored")
	if err != nil {
		t.Fatalf("promote via admin register: %v", err)
	}
	if promoted.Role != model.RoleAdmin {
		t.Fatalf("expected role %q, got %q", model.RoleAdmin, promoted.Role)
	}
	if len(users.users) != 2 {
		t.Fatalf("expected two user rows, got %d", len(users.users))
	}
}
