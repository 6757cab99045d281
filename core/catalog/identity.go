package catalog

import (
	"database/sql"
	"errors"
	"fmt"

	"melodex/core/auth"
	"melodex/logger"
	"melodex/model"
	"melodex/repository"
)

// IdentityService validates credentials and drives the role state machine:
// general users register, creator promotion grants an artist profile exactly
// once, admin promotion flips the role flag. Promotions are one-way.
type IdentityService struct {
	users repository.UserRepository
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(users repository.UserRepository) *IdentityService {
	return &IdentityService{users: users}
}

// Register creates a new general user.
func (s *IdentityService) Register(username, password, name string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password cannot be empty", ErrValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password for %q: %w", username, err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleGeneral,
	}
	if name != "" {
		user.Name = sql.NullString{String: name, Valid: true}
	}

	id, err := s.users.CreateUser(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, fmt.Errorf("%w: username %q already exists", ErrConflict, username)
		}
		return nil, fmt.Errorf("failed to create user %q: %w", username, err)
	}

	user.ID = id
	logger.Info("user registered", logger.Int64("userId", id), logger.String("username", username))
	return user, nil
}

// Login checks credentials and builds the session payload.
func (s *IdentityService) Login(username, password string) (*model.Session, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password cannot be empty", ErrValidation)
	}

	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %q: %w", username, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %q does not exist", ErrNotFound, username)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: incorrect password for %q", ErrAuth, username)
	}

	sess := &model.Session{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
	if user.ArtistID.Valid {
		sess.ArtistID = user.ArtistID.Int64
	}
	return sess, nil
}

// PromoteToCreator grants the user an artist profile and the creator role.
// A repeated promotion returns ErrConflict together with the existing user
// and artist; callers treat that as "proceed to the creator dashboard", not
// as a hard failure. The promotion itself is serialized in the repository,
// so at most one artist row is ever created per user.
func (s *IdentityService) PromoteToCreator(userID int64) (*model.User, *model.Artist, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up user %d: %w", userID, err)
	}
	if user == nil {
		return nil, nil, fmt.Errorf("%w: user %d does not exist", ErrNotFound, userID)
	}

	if user.ArtistID.Valid {
		artist := &model.Artist{ID: user.ArtistID.Int64}
		return user, artist, fmt.Errorf("%w: user %q is already a creator", ErrConflict, user.Username)
	}

	artistID, err := s.users.PromoteToCreator(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to promote user %d to creator: %w", userID, err)
	}

	user, err = s.users.GetUserByID(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reload user %d after promotion: %w", userID, err)
	}

	logger.Info("user promoted to creator",
		logger.Int64("userId", userID),
		logger.Int64("artistId", artistID))
	return user, &model.Artist{ID: artistID}, nil
}

// PromoteToAdmin flips an existing user's role to admin. The artist link is
// kept, so a creator who becomes an admin keeps ownership of their catalog.
func (s *IdentityService) PromoteToAdmin(username string) (*model.User, error) {
	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %q: %w", username, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %q does not exist", ErrNotFound, username)
	}

	if user.Role == model.RoleAdmin {
		return nil, fmt.Errorf("%w: user %q is already an admin", ErrConflict, username)
	}

	if err := s.users.UpdateRole(user.ID, model.RoleAdmin); err != nil {
		return nil, fmt.Errorf("failed to promote user %q to admin: %w", username, err)
	}

	user.Role = model.RoleAdmin
	logger.Info("user promoted to admin", logger.Int64("userId", user.ID), logger.String("username", username))
	return user, nil
}

// RegisterAdmin promotes an existing non-admin user, rejects an existing
// admin, and otherwise creates a fresh admin account. Admin accounts share
// the general username space; no separate credential is kept.
func (s *IdentityService) RegisterAdmin(username, password, name string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password cannot be empty", ErrValidation)
	}

	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %q: %w", username, err)
	}

	if user != nil {
		if user.Role == model.RoleAdmin {
			return nil, fmt.Errorf("%w: user %q is already an admin", ErrConflict, username)
		}
		if err := s.users.UpdateRole(user.ID, model.RoleAdmin); err != nil {
			return nil, fmt.Errorf("failed to promote user %q to admin: %w", username, err)
		}
		user.Role = model.RoleAdmin
		return user, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password for %q: %w", username, err)
	}

	admin := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if name != "" {
		admin.Name = sql.NullString{String: name, Valid: true}
	}

	id, err := s.users.CreateUser(admin)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, fmt.Errorf("%w: username %q already exists", ErrConflict, username)
		}
		return nil, fmt.Errorf("failed to create admin %q: %w", username, err)
	}

	admin.ID = id
	logger.Info("admin registered", logger.Int64("userId", id), logger.String("username", username))
	return admin, nil
}
